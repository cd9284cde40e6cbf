package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/courtside/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrForbidden indicates the entity exists but belongs to another identity.
var ErrForbidden = errors.New("repository: forbidden")

// ErrDuplicateCourt indicates two courts of one venue share a number.
var ErrDuplicateCourt = errors.New("repository: duplicate court number")

const uniqueViolation = "23505"

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Venues   *VenuesRepository
	Courts   *CourtsRepository
	Ratings  *RatingsRepository
	Profiles *ProfilesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Venues:   &VenuesRepository{pool: pool},
		Courts:   &CourtsRepository{pool: pool},
		Ratings:  &RatingsRepository{pool: pool},
		Profiles: &ProfilesRepository{pool: pool},
	}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// inTx runs fn inside a transaction, committing on success.
func inTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
