package repository

import (
	"context"

	"github.com/Clark-Hu/courtside/internal/domain"
)

const listAllPageSize = 200

// ListVenues returns every venue ordered by name, walking the paginated list.
func (r *Repository) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	all := make([]domain.Venue, 0)
	filters := VenueListFilters{Limit: listAllPageSize}
	for {
		page, err := r.Venues.List(ctx, filters)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if page.NextCursor == nil {
			return all, nil
		}
		last := page.Items[len(page.Items)-1]
		filters.Cursor = &VenueCursor{Name: last.Name, ID: last.ID}
	}
}

// GetVenue loads a single venue.
func (r *Repository) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	return r.Venues.GetByID(ctx, id)
}

// ListCourtsByVenues loads the courts of the given venues.
func (r *Repository) ListCourtsByVenues(ctx context.Context, venueIDs []string) ([]domain.Court, error) {
	return r.Courts.ListByVenues(ctx, venueIDs)
}

// GetCourt loads a single court.
func (r *Repository) GetCourt(ctx context.Context, id string) (domain.Court, error) {
	return r.Courts.GetByID(ctx, id)
}

// ListRatingsByCourts loads the ratings of the given courts, newest first.
func (r *Repository) ListRatingsByCourts(ctx context.Context, courtIDs []string) ([]domain.Rating, error) {
	return r.Ratings.ListByCourts(ctx, courtIDs)
}
