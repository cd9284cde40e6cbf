package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/courtside/internal/domain"
)

var errNotFound = errors.New("not found")

type fakeFetcher struct {
	mu      sync.Mutex
	venues  []domain.Venue
	courts  []domain.Court
	ratings []domain.Rating
	fail    map[string]error
	calls   []string
}

func (f *fakeFetcher) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *fakeFetcher) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	if err := f.record("ListVenues"); err != nil {
		return nil, err
	}
	return append([]domain.Venue(nil), f.venues...), nil
}

func (f *fakeFetcher) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	if err := f.record("GetVenue"); err != nil {
		return domain.Venue{}, err
	}
	for _, v := range f.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Venue{}, errNotFound
}

func (f *fakeFetcher) ListCourtsByVenues(ctx context.Context, venueIDs []string) ([]domain.Court, error) {
	if err := f.record("ListCourtsByVenues"); err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(venueIDs))
	for _, id := range venueIDs {
		want[id] = true
	}
	out := make([]domain.Court, 0)
	for _, c := range f.courts {
		if want[c.VenueID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeFetcher) GetCourt(ctx context.Context, id string) (domain.Court, error) {
	if err := f.record("GetCourt"); err != nil {
		return domain.Court{}, err
	}
	for _, c := range f.courts {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Court{}, errNotFound
}

func (f *fakeFetcher) ListRatingsByCourts(ctx context.Context, courtIDs []string) ([]domain.Rating, error) {
	if err := f.record("ListRatingsByCourts"); err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(courtIDs))
	for _, id := range courtIDs {
		want[id] = true
	}
	out := make([]domain.Rating, 0)
	for _, r := range f.ratings {
		if want[r.CourtID] {
			out = append(out, r)
		}
	}
	return out, nil
}

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func sampleFetcher() *fakeFetcher {
	return &fakeFetcher{
		venues: []domain.Venue{
			{ID: "v-alpha", Name: "Alpha Club"},
			{ID: "v-empty", Name: "Mike Courts"},
			{ID: "v-zulu", Name: "Zulu Park"},
		},
		courts: []domain.Court{
			{ID: "c-3", VenueID: "v-alpha", Number: 3},
			{ID: "c-1", VenueID: "v-alpha", Number: 1},
			{ID: "c-z", VenueID: "v-zulu", Number: 1},
		},
		ratings: []domain.Rating{
			{ID: "r1", CourtID: "c-1", Overall: 5, Surface: intPtr(4), CreatedAt: base.Add(-2 * time.Hour), Username: strPtr("sam")},
			{ID: "r2", CourtID: "c-1", Overall: 4, Surface: intPtr(5), Net: intPtr(3), CreatedAt: base.Add(-30 * time.Second)},
			{ID: "r3", CourtID: "c-3", Overall: 1, CreatedAt: base.Add(-48 * time.Hour)},
			{ID: "r4", CourtID: "c-1", Overall: 4, CreatedAt: base.Add(-40 * 24 * time.Hour), Username: strPtr("")},
		},
	}
}

func TestVenueCards(t *testing.T) {
	svc := NewService(sampleFetcher())

	cards, err := svc.VenueCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "Alpha Club", cards[0].Venue.Name)
	assert.Equal(t, 2, cards[0].CourtsCount)
	require.NotNil(t, cards[0].AvgRating)
	// (5+4+1+4)/4 = 3.5, flattened across courts.
	assert.InDelta(t, 3.5, *cards[0].AvgRating, 1e-9)
	assert.Equal(t, "3.5", cards[0].Label)

	assert.Equal(t, "Mike Courts", cards[1].Venue.Name)
	assert.Equal(t, 0, cards[1].CourtsCount)
	assert.Nil(t, cards[1].AvgRating)
	assert.Equal(t, NewLabel, cards[1].Label)

	assert.Equal(t, "Zulu Park", cards[2].Venue.Name)
	assert.Equal(t, 1, cards[2].CourtsCount)
	assert.Nil(t, cards[2].AvgRating)
}

func TestVenueCardsKeepFetcherOrder(t *testing.T) {
	f := &fakeFetcher{venues: []domain.Venue{
		{ID: "v1", Name: "apple courts"},
		{ID: "v2", Name: "Écluse Park"},
		{ID: "v3", Name: "Zed Arena"},
	}}

	cards, err := NewService(f).VenueCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "v1", cards[0].Venue.ID)
	assert.Equal(t, "v2", cards[1].Venue.ID)
	assert.Equal(t, "v3", cards[2].Venue.ID)
}

func TestVenueCardsEmpty(t *testing.T) {
	f := &fakeFetcher{}
	cards, err := NewService(f).VenueCards(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.Equal(t, []string{"ListVenues"}, f.calls)
}

func TestVenueDetail(t *testing.T) {
	svc := NewService(sampleFetcher())

	detail, err := svc.VenueDetail(context.Background(), "v-alpha")
	require.NoError(t, err)

	assert.Equal(t, "Alpha Club", detail.Venue.Name)
	require.Len(t, detail.Courts, 2)
	assert.Equal(t, 1, detail.Courts[0].Court.Number)
	assert.Equal(t, 3, detail.Courts[0].RatingsCount)
	require.NotNil(t, detail.Courts[0].AvgRating)
	assert.InDelta(t, 4.3, *detail.Courts[0].AvgRating, 1e-9)
	assert.Equal(t, 3, detail.Courts[1].Court.Number)
	assert.Equal(t, 1, detail.Courts[1].RatingsCount)

	assert.Equal(t, 2, detail.CourtsCount)
	require.NotNil(t, detail.AvgRating)
	assert.InDelta(t, 3.5, *detail.AvgRating, 1e-9)
}

func TestVenueDetailWithoutCourts(t *testing.T) {
	detail, err := NewService(sampleFetcher()).VenueDetail(context.Background(), "v-empty")
	require.NoError(t, err)
	assert.Empty(t, detail.Courts)
	assert.Equal(t, 0, detail.CourtsCount)
	assert.Nil(t, detail.AvgRating)
}

func TestVenueDetailNotFound(t *testing.T) {
	_, err := NewService(sampleFetcher()).VenueDetail(context.Background(), "missing")
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "venue", fe.Op)
	assert.ErrorIs(t, err, errNotFound)
}

func TestCourtDetail(t *testing.T) {
	svc := NewService(sampleFetcher())

	detail, err := svc.CourtDetail(context.Background(), "c-1", base)
	require.NoError(t, err)

	assert.Equal(t, 3, detail.RatingsCount)
	require.NotNil(t, detail.AvgRating)
	assert.InDelta(t, 4.3, *detail.AvgRating, 1e-9)

	require.Len(t, detail.Ratings, 3)
	assert.Equal(t, "r2", detail.Ratings[0].Rating.ID)
	assert.Equal(t, "just now", detail.Ratings[0].Recency)
	assert.Equal(t, AnonymousAuthor, detail.Ratings[0].Author)
	assert.Equal(t, "r1", detail.Ratings[1].Rating.ID)
	assert.Equal(t, "2 hours", detail.Ratings[1].Recency)
	assert.Equal(t, "sam", detail.Ratings[1].Author)
	assert.Equal(t, "1 month", detail.Ratings[2].Recency)
	assert.Equal(t, AnonymousAuthor, detail.Ratings[2].Author)

	require.Len(t, detail.Attributes, 3)
	surface := detail.Attributes[0]
	assert.Equal(t, "surface", surface.Name)
	require.NotNil(t, surface.Value)
	assert.InDelta(t, 4.5, *surface.Value, 1e-9)
	assert.InDelta(t, 90.0, surface.Percent, 1e-9)

	net := detail.Attributes[1]
	require.NotNil(t, net.Value)
	assert.InDelta(t, 3.0, *net.Value, 1e-9)
	assert.InDelta(t, 60.0, net.Percent, 1e-9)

	lighting := detail.Attributes[2]
	assert.Nil(t, lighting.Value)
	assert.Zero(t, lighting.Percent)
}

func TestCourtDetailWithoutRatings(t *testing.T) {
	f := sampleFetcher()
	f.courts = append(f.courts, domain.Court{ID: "c-new", VenueID: "v-zulu", Number: 2})

	detail, err := NewService(f).CourtDetail(context.Background(), "c-new", base)
	require.NoError(t, err)
	assert.Equal(t, 0, detail.RatingsCount)
	assert.Nil(t, detail.AvgRating)
	assert.Empty(t, detail.Ratings)
}

func TestFetchFailuresAreWrappedWhole(t *testing.T) {
	boom := errors.New("connection reset")
	cases := []struct {
		name   string
		failOp string
		wantOp string
		run    func(*Service) error
	}{
		{"cards venues", "ListVenues", "venues", func(s *Service) error { _, err := s.VenueCards(context.Background()); return err }},
		{"cards courts", "ListCourtsByVenues", "courts", func(s *Service) error { _, err := s.VenueCards(context.Background()); return err }},
		{"cards ratings", "ListRatingsByCourts", "ratings", func(s *Service) error { _, err := s.VenueCards(context.Background()); return err }},
		{"detail venue", "GetVenue", "venue", func(s *Service) error { _, err := s.VenueDetail(context.Background(), "v-alpha"); return err }},
		{"detail courts", "ListCourtsByVenues", "courts", func(s *Service) error { _, err := s.VenueDetail(context.Background(), "v-alpha"); return err }},
		{"detail ratings", "ListRatingsByCourts", "ratings", func(s *Service) error { _, err := s.VenueDetail(context.Background(), "v-alpha"); return err }},
		{"court court", "GetCourt", "court", func(s *Service) error { _, err := s.CourtDetail(context.Background(), "c-1", base); return err }},
		{"court ratings", "ListRatingsByCourts", "ratings", func(s *Service) error { _, err := s.CourtDetail(context.Background(), "c-1", base); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := sampleFetcher()
			f.fail = map[string]error{tc.failOp: boom}

			err := tc.run(NewService(f))
			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.wantOp, fe.Op)
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestVenueDetailSkipsRatingsWhenCourtsFail(t *testing.T) {
	f := sampleFetcher()
	f.fail = map[string]error{"ListCourtsByVenues": errors.New("timeout")}

	_, err := NewService(f).VenueDetail(context.Background(), "v-alpha")
	require.Error(t, err)
	assert.NotContains(t, f.calls, "ListRatingsByCourts")
}
