package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/courtside/internal/domain"
)

// RatingsRepository provides helpers for court ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RatingCreateParams captures the payload required to create a rating.
type RatingCreateParams struct {
	CourtID  string
	UserID   string
	Overall  int
	Surface  *int
	Net      *int
	Lighting *int
	Comment  *string
}

const ratingColumns = `
    r.id::text,
    r.court_id::text,
    r.user_id,
    r.overall_rating,
    r.surface_rating,
    r.net_rating,
    r.lighting_rating,
    r.comment,
    r.created_at,
    p.username
`

// Create inserts a rating. A missing court yields ErrNotFound.
func (r *RatingsRepository) Create(ctx context.Context, params RatingCreateParams) (domain.Rating, error) {
	query := fmt.Sprintf(`
        WITH inserted AS (
            INSERT INTO ratings (id, court_id, user_id, overall_rating, surface_rating, net_rating, lighting_rating, comment)
            SELECT $1::uuid, c.id, $3::text, $4::smallint, $5::smallint, $6::smallint, $7::smallint, $8::text
            FROM courts c
            WHERE c.id = $2
            RETURNING *
        )
        SELECT %s
        FROM inserted r
        LEFT JOIN profiles p ON p.id = r.user_id
    `, ratingColumns)

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), params.CourtID, params.UserID, params.Overall, params.Surface, params.Net, params.Lighting, params.Comment)
	rating, err := scanRating(row)
	if err != nil {
		return domain.Rating{}, notFound(err)
	}
	return rating, nil
}

// ListByCourts returns the ratings of the given courts, newest first.
func (r *RatingsRepository) ListByCourts(ctx context.Context, courtIDs []string) ([]domain.Rating, error) {
	if len(courtIDs) == 0 {
		return []domain.Rating{}, nil
	}
	query := fmt.Sprintf(`
        SELECT %s
        FROM ratings r
        LEFT JOIN profiles p ON p.id = r.user_id
        WHERE r.court_id = ANY($1::uuid[])
        ORDER BY r.created_at DESC, r.id
    `, ratingColumns)

	rows, err := r.pool.Query(ctx, query, courtIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListByUser returns every rating authored by userID together with the court
// number and venue it belongs to, newest first.
func (r *RatingsRepository) ListByUser(ctx context.Context, userID string) ([]domain.UserRating, error) {
	query := fmt.Sprintf(`
        SELECT %s, c.court_number, v.id::text, v.name
        FROM ratings r
        JOIN courts c ON c.id = r.court_id
        JOIN venues v ON v.id = c.venue_id
        LEFT JOIN profiles p ON p.id = r.user_id
        WHERE r.user_id = $1
        ORDER BY r.created_at DESC, r.id
    `, ratingColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.UserRating, 0)
	for rows.Next() {
		var ur domain.UserRating
		if err := rows.Scan(append(ratingDest(&ur.Rating), &ur.CourtNumber, &ur.VenueID, &ur.VenueName)...); err != nil {
			return nil, err
		}
		out = append(out, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a rating authored by userID.
func (r *RatingsRepository) Delete(ctx context.Context, id, userID string) error {
	var author string
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM ratings WHERE id = $1`, id).Scan(&author)
	if err != nil {
		return notFound(err)
	}
	if author != userID {
		return ErrForbidden
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM ratings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func ratingDest(rating *domain.Rating) []interface{} {
	return []interface{}{
		&rating.ID,
		&rating.CourtID,
		&rating.UserID,
		&rating.Overall,
		&rating.Surface,
		&rating.Net,
		&rating.Lighting,
		&rating.Comment,
		&rating.CreatedAt,
		&rating.Username,
	}
}

func scanRating(row pgx.Row) (domain.Rating, error) {
	var rating domain.Rating
	if err := row.Scan(ratingDest(&rating)...); err != nil {
		return domain.Rating{}, err
	}
	return rating, nil
}
