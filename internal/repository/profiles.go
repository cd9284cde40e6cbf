package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/courtside/internal/domain"
)

// ProfilesRepository provides helpers for user profiles.
type ProfilesRepository struct {
	pool *pgxpool.Pool
}

const profileColumns = `id, username, full_name, avatar_url, tier, updated_at`

// Get fetches the profile of an identity.
func (r *ProfilesRepository) Get(ctx context.Context, id string) (domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.Tier, &p.UpdatedAt)
	if err != nil {
		return domain.Profile{}, notFound(err)
	}
	return p, nil
}

// Ensure returns the profile of id, creating it on first use with the local
// part of email as username.
func (r *ProfilesRepository) Ensure(ctx context.Context, id, email string) (domain.Profile, bool, error) {
	var username *string
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		username = &local
	}

	var (
		p       domain.Profile
		created bool
	)
	err := r.pool.QueryRow(ctx, `
        INSERT INTO profiles (id, username)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
        RETURNING `+profileColumns+`, (xmax = 0) AS inserted
    `, id, username).Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.Tier, &p.UpdatedAt, &created)
	if err != nil {
		return domain.Profile{}, false, err
	}
	return p, created, nil
}
