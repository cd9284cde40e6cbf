package aggregate

import "github.com/Clark-Hu/courtside/internal/domain"

// CourtSummary is the derived view of one court's ratings.
type CourtSummary struct {
	Count       int
	AvgOverall  *float64
	AvgSurface  *float64
	AvgNet      *float64
	AvgLighting *float64
}

// VenueSummary is the derived view of a venue's courts and their ratings.
type VenueSummary struct {
	CourtsCount int
	AvgRating   *float64
}

type accumulator struct {
	sum int64
	n   int64
}

func (a *accumulator) add(v int) {
	a.sum += int64(v)
	a.n++
}

func (a *accumulator) addOptional(v *int) {
	if v != nil {
		a.add(*v)
	}
}

func (a accumulator) mean() *float64 {
	return Mean(a.sum, a.n)
}

// SummarizeCourt counts ratings and averages each attribute. Sub-rating
// averages only consider ratings that carry that attribute.
func SummarizeCourt(ratings []domain.Rating) CourtSummary {
	var overall, surface, net, lighting accumulator
	for _, r := range ratings {
		overall.add(r.Overall)
		surface.addOptional(r.Surface)
		net.addOptional(r.Net)
		lighting.addOptional(r.Lighting)
	}
	return CourtSummary{
		Count:       len(ratings),
		AvgOverall:  overall.mean(),
		AvgSurface:  surface.mean(),
		AvgNet:      net.mean(),
		AvgLighting: lighting.mean(),
	}
}

// SummarizeVenue averages the overall score across every rating of every
// listed court. Ratings are flattened, so a court with ten ratings weighs ten
// times as much as a court with one. Entries in ratingsByCourt for courts not
// in the list are ignored.
func SummarizeVenue(courts []domain.Court, ratingsByCourt map[string][]domain.Rating) VenueSummary {
	var overall accumulator
	for _, c := range courts {
		for _, r := range ratingsByCourt[c.ID] {
			overall.add(r.Overall)
		}
	}
	return VenueSummary{
		CourtsCount: len(courts),
		AvgRating:   overall.mean(),
	}
}

// GroupByCourt indexes ratings by their court id, preserving input order
// within each court.
func GroupByCourt(ratings []domain.Rating) map[string][]domain.Rating {
	grouped := make(map[string][]domain.Rating)
	for _, r := range ratings {
		grouped[r.CourtID] = append(grouped[r.CourtID], r)
	}
	return grouped
}
