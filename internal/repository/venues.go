package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/courtside/internal/domain"
)

// VenuesRepository provides persistence helpers for venues and, through
// transactional saves, the courts they own.
type VenuesRepository struct {
	pool *pgxpool.Pool
}

const venueColumns = `
    id::text,
    name,
    address,
    city,
    state,
    zip,
    description,
    image_url,
    user_id,
    created_at
`

// VenueListFilters encapsulates search and pagination options.
type VenueListFilters struct {
	Query   *string
	City    *string
	OwnerID *string
	Limit   int
	Cursor  *VenueCursor
}

// VenueCursor allows stable pagination by name/id.
type VenueCursor struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// VenueListResult returns the paginated payload.
type VenueListResult struct {
	Items      []domain.Venue
	NextCursor *string
}

// Create inserts a venue with its courts in one transaction.
func (r *VenuesRepository) Create(ctx context.Context, ownerID string, draft domain.VenueDraft) (domain.Venue, error) {
	var venue domain.Venue
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`
            INSERT INTO venues (id, name, address, city, state, zip, description, image_url, user_id)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
            RETURNING %s
        `, venueColumns)

		row := tx.QueryRow(ctx, query, uuid.NewString(), draft.Name, draft.Address, draft.City, draft.State, draft.Zip, draft.Description, draft.ImageURL, ownerID)
		var err error
		venue, err = scanVenue(row)
		if err != nil {
			return err
		}
		return insertCourts(ctx, tx, venue.ID, draft.Courts)
	})
	if err != nil {
		return domain.Venue{}, fmt.Errorf("create venue: %w", err)
	}
	return venue, nil
}

// Update rewrites the venue fields and replaces all of its courts. Existing
// courts, and the ratings attached to them, are deleted first.
func (r *VenuesRepository) Update(ctx context.Context, id, ownerID string, draft domain.VenueDraft) (domain.Venue, error) {
	var venue domain.Venue
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := checkOwner(ctx, tx, id, ownerID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM courts WHERE venue_id = $1`, id); err != nil {
			return fmt.Errorf("delete courts: %w", err)
		}

		query := fmt.Sprintf(`
            UPDATE venues
            SET name = $2, address = $3, city = $4, state = $5, zip = $6,
                description = $7, image_url = $8
            WHERE id = $1
            RETURNING %s
        `, venueColumns)
		row := tx.QueryRow(ctx, query, id, draft.Name, draft.Address, draft.City, draft.State, draft.Zip, draft.Description, draft.ImageURL)
		var err error
		venue, err = scanVenue(row)
		if err != nil {
			return notFound(err)
		}
		return insertCourts(ctx, tx, id, draft.Courts)
	})
	if err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

// Delete removes a venue owned by ownerID. Courts and ratings cascade.
func (r *VenuesRepository) Delete(ctx context.Context, id, ownerID string) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := checkOwner(ctx, tx, id, ownerID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
		return err
	})
}

// GetByID fetches a venue by its identifier.
func (r *VenuesRepository) GetByID(ctx context.Context, id string) (domain.Venue, error) {
	query := fmt.Sprintf(`SELECT %s FROM venues WHERE id = $1`, venueColumns)
	venue, err := scanVenue(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Venue{}, notFound(err)
	}
	return venue, nil
}

// List returns venues ordered by name that match the provided filters.
func (r *VenuesRepository) List(ctx context.Context, filters VenueListFilters) (VenueListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	} else if filters.Limit > 200 {
		filters.Limit = 200
	}

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Query != nil && strings.TrimSpace(*filters.Query) != "" {
		q := "%" + strings.TrimSpace(*filters.Query) + "%"
		p := arg(q)
		where = append(where, fmt.Sprintf("(name ILIKE %s OR address ILIKE %s OR city ILIKE %s)", p, p, p))
	}
	if filters.City != nil && strings.TrimSpace(*filters.City) != "" {
		where = append(where, fmt.Sprintf("city ILIKE %s", arg(strings.TrimSpace(*filters.City))))
	}
	if filters.OwnerID != nil {
		where = append(where, fmt.Sprintf("user_id = %s", arg(*filters.OwnerID)))
	}
	if filters.Cursor != nil {
		cursorName := arg(filters.Cursor.Name)
		cursorID := arg(filters.Cursor.ID)
		where = append(where, fmt.Sprintf("(name, id) > (%s, %s::uuid)", cursorName, cursorID))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(venueColumns)
	queryBuilder.WriteString(" FROM venues")

	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY name ASC, id ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT %d", filters.Limit))

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return VenueListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Venue, 0)
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return VenueListResult{}, err
		}
		items = append(items, venue)
	}
	if err := rows.Err(); err != nil {
		return VenueListResult{}, err
	}

	var nextCursor *string
	if len(items) == filters.Limit {
		last := items[len(items)-1]
		token, err := encodeCursor(VenueCursor{Name: last.Name, ID: last.ID})
		if err != nil {
			return VenueListResult{}, err
		}
		nextCursor = &token
	}

	return VenueListResult{Items: items, NextCursor: nextCursor}, nil
}

func checkOwner(ctx context.Context, tx pgx.Tx, venueID, ownerID string) error {
	var owner *string
	err := tx.QueryRow(ctx, `SELECT user_id FROM venues WHERE id = $1 FOR UPDATE`, venueID).Scan(&owner)
	if err != nil {
		return notFound(err)
	}
	if owner == nil || *owner != ownerID {
		return ErrForbidden
	}
	return nil
}

func scanVenue(row pgx.Row) (domain.Venue, error) {
	var venue domain.Venue
	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.City,
		&venue.State,
		&venue.Zip,
		&venue.Description,
		&venue.ImageURL,
		&venue.OwnerID,
		&venue.CreatedAt,
	)
	if err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func encodeCursor(c VenueCursor) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(payload), nil
}

// DecodeCursor parses a cursor token into a VenueCursor.
func DecodeCursor(token string) (*VenueCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	var cursor VenueCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor payload: %w", err)
	}
	if _, err := uuid.Parse(cursor.ID); err != nil {
		return nil, fmt.Errorf("invalid cursor id: %w", err)
	}
	return &cursor, nil
}
