// Package views assembles the read models served to the presentation
// layer: fetch a snapshot of records, run the aggregation engine over it and
// shape the result.
package views

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Clark-Hu/courtside/internal/aggregate"
	"github.com/Clark-Hu/courtside/internal/domain"
)

// AnonymousAuthor is shown for ratings whose author has no profile name.
const AnonymousAuthor = "Anonymous"

// NewLabel is shown in place of an average for venues without ratings.
const NewLabel = "New"

// Fetcher is the record-fetch contract the views are built from.
// ListVenues returns venues in display order (by name, under the store's
// collation); the views keep that order.
type Fetcher interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	ListCourtsByVenues(ctx context.Context, venueIDs []string) ([]domain.Court, error)
	GetCourt(ctx context.Context, id string) (domain.Court, error)
	ListRatingsByCourts(ctx context.Context, courtIDs []string) ([]domain.Rating, error)
}

// FetchError reports that the records behind a view could not be loaded.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(op string, err error) error {
	return &FetchError{Op: op, Err: err}
}

// VenueCard is the listing entry for a venue.
type VenueCard struct {
	Venue       domain.Venue
	CourtsCount int
	AvgRating   *float64
	Label       string
}

// CourtCard is a court row inside a venue detail.
type CourtCard struct {
	Court        domain.Court
	RatingsCount int
	AvgRating    *float64
}

// VenueDetail is a venue with its courts and their summaries.
type VenueDetail struct {
	Venue       domain.Venue
	Courts      []CourtCard
	CourtsCount int
	AvgRating   *float64
}

// AttributeBar renders one sub-rating average on a 5 point scale.
type AttributeBar struct {
	Name    string
	Value   *float64
	Percent float64
}

// RatingEntry is a single rating as displayed on a court page.
type RatingEntry struct {
	Rating  domain.Rating
	Author  string
	Recency string
}

// CourtDetail is a court with its ratings and attribute breakdown.
type CourtDetail struct {
	Court        domain.Court
	RatingsCount int
	AvgRating    *float64
	Attributes   []AttributeBar
	Ratings      []RatingEntry
}

// Service builds views from a Fetcher.
type Service struct {
	fetcher Fetcher
}

// NewService returns a Service reading from f.
func NewService(f Fetcher) *Service {
	return &Service{fetcher: f}
}

// VenueCards lists every venue, in the order the fetcher returns them, with
// its court count and average rating.
func (s *Service) VenueCards(ctx context.Context) ([]VenueCard, error) {
	venues, err := s.fetcher.ListVenues(ctx)
	if err != nil {
		return nil, fetchErr("venues", err)
	}
	if len(venues) == 0 {
		return []VenueCard{}, nil
	}

	courts, err := s.fetcher.ListCourtsByVenues(ctx, venueIDs(venues))
	if err != nil {
		return nil, fetchErr("courts", err)
	}
	ratings, err := s.fetcher.ListRatingsByCourts(ctx, courtIDs(courts))
	if err != nil {
		return nil, fetchErr("ratings", err)
	}

	courtsByVenue := make(map[string][]domain.Court, len(venues))
	for _, c := range courts {
		courtsByVenue[c.VenueID] = append(courtsByVenue[c.VenueID], c)
	}
	ratingsByCourt := aggregate.GroupByCourt(ratings)

	cards := make([]VenueCard, 0, len(venues))
	for _, v := range venues {
		summary := aggregate.SummarizeVenue(courtsByVenue[v.ID], ratingsByCourt)
		cards = append(cards, VenueCard{
			Venue:       v,
			CourtsCount: summary.CourtsCount,
			AvgRating:   summary.AvgRating,
			Label:       ratingLabel(summary.AvgRating),
		})
	}
	return cards, nil
}

// VenueDetail loads a venue, its courts ordered by number and the ratings
// of those courts. The venue row and the court list are read concurrently.
func (s *Service) VenueDetail(ctx context.Context, venueID string) (VenueDetail, error) {
	var (
		venue  domain.Venue
		courts []domain.Court
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.fetcher.GetVenue(gctx, venueID)
		if err != nil {
			return fetchErr("venue", err)
		}
		venue = v
		return nil
	})
	g.Go(func() error {
		cs, err := s.fetcher.ListCourtsByVenues(gctx, []string{venueID})
		if err != nil {
			return fetchErr("courts", err)
		}
		courts = cs
		return nil
	})
	if err := g.Wait(); err != nil {
		return VenueDetail{}, err
	}

	ratings, err := s.fetcher.ListRatingsByCourts(ctx, courtIDs(courts))
	if err != nil {
		return VenueDetail{}, fetchErr("ratings", err)
	}
	ratingsByCourt := aggregate.GroupByCourt(ratings)

	sort.SliceStable(courts, func(i, j int) bool { return courts[i].Number < courts[j].Number })

	cards := make([]CourtCard, 0, len(courts))
	for _, c := range courts {
		summary := aggregate.SummarizeCourt(ratingsByCourt[c.ID])
		cards = append(cards, CourtCard{
			Court:        c,
			RatingsCount: summary.Count,
			AvgRating:    summary.AvgOverall,
		})
	}
	venueSummary := aggregate.SummarizeVenue(courts, ratingsByCourt)

	return VenueDetail{
		Venue:       venue,
		Courts:      cards,
		CourtsCount: venueSummary.CourtsCount,
		AvgRating:   venueSummary.AvgRating,
	}, nil
}

// CourtDetail loads a court and its ratings, newest first, with recency
// text computed against now.
func (s *Service) CourtDetail(ctx context.Context, courtID string, now time.Time) (CourtDetail, error) {
	court, err := s.fetcher.GetCourt(ctx, courtID)
	if err != nil {
		return CourtDetail{}, fetchErr("court", err)
	}
	ratings, err := s.fetcher.ListRatingsByCourts(ctx, []string{courtID})
	if err != nil {
		return CourtDetail{}, fetchErr("ratings", err)
	}

	sort.SliceStable(ratings, func(i, j int) bool { return ratings[i].CreatedAt.After(ratings[j].CreatedAt) })

	summary := aggregate.SummarizeCourt(ratings)
	entries := make([]RatingEntry, 0, len(ratings))
	for _, r := range ratings {
		entries = append(entries, RatingEntry{
			Rating:  r,
			Author:  authorName(r.Username),
			Recency: aggregate.FormatRecency(r.CreatedAt, now),
		})
	}

	return CourtDetail{
		Court:        court,
		RatingsCount: summary.Count,
		AvgRating:    summary.AvgOverall,
		Attributes: []AttributeBar{
			bar("surface", summary.AvgSurface),
			bar("net", summary.AvgNet),
			bar("lighting", summary.AvgLighting),
		},
		Ratings: entries,
	}, nil
}

func bar(name string, value *float64) AttributeBar {
	b := AttributeBar{Name: name, Value: value}
	if value != nil {
		b.Percent = *value / 5 * 100
	}
	return b
}

func ratingLabel(avg *float64) string {
	if avg == nil {
		return NewLabel
	}
	return fmt.Sprintf("%.1f", *avg)
}

func authorName(username *string) string {
	if username == nil || *username == "" {
		return AnonymousAuthor
	}
	return *username
}

func venueIDs(venues []domain.Venue) []string {
	ids := make([]string, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	return ids
}

func courtIDs(courts []domain.Court) []string {
	ids := make([]string, 0, len(courts))
	for _, c := range courts {
		ids = append(ids, c.ID)
	}
	return ids
}
