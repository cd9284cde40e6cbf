package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/courtside/internal/domain"
)

// CourtsRepository provides read helpers for courts. Courts are written only
// as part of a venue save, see VenuesRepository.
type CourtsRepository struct {
	pool *pgxpool.Pool
}

const courtColumns = `
    id::text,
    venue_id::text,
    court_number,
    court_type,
    is_indoor,
    amenities,
    image_url,
    created_at
`

// GetByID fetches a court by its identifier.
func (r *CourtsRepository) GetByID(ctx context.Context, id string) (domain.Court, error) {
	query := fmt.Sprintf(`SELECT %s FROM courts WHERE id = $1`, courtColumns)
	court, err := scanCourt(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Court{}, notFound(err)
	}
	return court, nil
}

// ListByVenues returns the courts of the given venues ordered by venue and
// court number.
func (r *CourtsRepository) ListByVenues(ctx context.Context, venueIDs []string) ([]domain.Court, error) {
	if len(venueIDs) == 0 {
		return []domain.Court{}, nil
	}
	query := fmt.Sprintf(`
        SELECT %s FROM courts
        WHERE venue_id = ANY($1::uuid[])
        ORDER BY venue_id, court_number
    `, courtColumns)

	rows, err := r.pool.Query(ctx, query, venueIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courts := make([]domain.Court, 0)
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, court)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courts, nil
}

func insertCourts(ctx context.Context, tx pgx.Tx, venueID string, courts []domain.CourtDraft) error {
	if len(courts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range courts {
		batch.Queue(`
            INSERT INTO courts (id, venue_id, court_number, court_type, is_indoor, amenities)
            VALUES ($1,$2,$3,$4,$5,$6)
        `, uuid.NewString(), venueID, c.Number, string(c.Type), c.Indoor, c.Amenities)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateCourt
		}
		return fmt.Errorf("insert courts: %w", err)
	}
	return nil
}

func scanCourt(row pgx.Row) (domain.Court, error) {
	var (
		court     domain.Court
		courtType *string
	)
	err := row.Scan(
		&court.ID,
		&court.VenueID,
		&court.Number,
		&courtType,
		&court.Indoor,
		&court.Amenities,
		&court.ImageURL,
		&court.CreatedAt,
	)
	if err != nil {
		return domain.Court{}, err
	}
	if courtType != nil {
		t := domain.CourtType(*courtType)
		court.Type = &t
	}
	return court, nil
}
