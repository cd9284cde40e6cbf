package httpserver

import (
	"time"

	"github.com/Clark-Hu/courtside/internal/checkout"
	"github.com/Clark-Hu/courtside/internal/domain"
	"github.com/Clark-Hu/courtside/internal/views"
)

type venueResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Zip         string    `json:"zip"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	OwnerID     *string   `json:"ownerId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type courtResponse struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venueId"`
	Number    int       `json:"courtNumber"`
	Type      *string   `json:"courtType"`
	Indoor    bool      `json:"isIndoor"`
	Amenities []string  `json:"amenities"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"courtId"`
	UserID    string    `json:"userId"`
	Overall   int       `json:"overallRating"`
	Surface   *int      `json:"surfaceRating"`
	Net       *int      `json:"netRating"`
	Lighting  *int      `json:"lightingRating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type venueCardResponse struct {
	venueResponse
	CourtsCount int      `json:"courtsCount"`
	AvgRating   *float64 `json:"avgRating"`
	Label       string   `json:"ratingLabel"`
}

type venueListResponse struct {
	Items []venueCardResponse `json:"items"`
}

type courtCardResponse struct {
	courtResponse
	RatingsCount int      `json:"ratingsCount"`
	AvgRating    *float64 `json:"avgRating"`
}

type venueDetailResponse struct {
	Venue       venueResponse       `json:"venue"`
	Courts      []courtCardResponse `json:"courts"`
	CourtsCount int                 `json:"courtsCount"`
	AvgRating   *float64            `json:"avgRating"`
}

type attributeResponse struct {
	Name    string   `json:"name"`
	Value   *float64 `json:"value"`
	Percent float64  `json:"percent"`
}

type ratingEntryResponse struct {
	ratingResponse
	Author  string `json:"author"`
	Recency string `json:"recency"`
}

type courtDetailResponse struct {
	Court        courtResponse         `json:"court"`
	RatingsCount int                   `json:"ratingsCount"`
	AvgRating    *float64              `json:"avgRating"`
	Attributes   []attributeResponse   `json:"attributes"`
	Ratings      []ratingEntryResponse `json:"ratings"`
}

type userRatingResponse struct {
	ratingResponse
	CourtNumber int    `json:"courtNumber"`
	VenueID     string `json:"venueId"`
	VenueName   string `json:"venueName"`
}

type profileResponse struct {
	ID         string  `json:"id"`
	Username   *string `json:"username"`
	FullName   *string `json:"fullName,omitempty"`
	AvatarURL  *string `json:"avatarUrl,omitempty"`
	Tier       string  `json:"tier"`
	Subscribed bool    `json:"subscribed"`
}

type planResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Mode        string `json:"mode"`
}

type ownedVenueListResponse struct {
	Items      []venueResponse `json:"items"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

func toVenueResponse(v domain.Venue) venueResponse {
	return venueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Address:     v.Address,
		City:        v.City,
		State:       v.State,
		Zip:         v.Zip,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		OwnerID:     v.OwnerID,
		CreatedAt:   v.CreatedAt,
	}
}

func toCourtResponse(c domain.Court) courtResponse {
	resp := courtResponse{
		ID:        c.ID,
		VenueID:   c.VenueID,
		Number:    c.Number,
		Indoor:    c.Indoor,
		Amenities: c.Amenities,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if c.Type != nil {
		t := string(*c.Type)
		resp.Type = &t
	}
	return resp
}

func toRatingResponse(r domain.Rating) ratingResponse {
	return ratingResponse{
		ID:        r.ID,
		CourtID:   r.CourtID,
		UserID:    r.UserID,
		Overall:   r.Overall,
		Surface:   r.Surface,
		Net:       r.Net,
		Lighting:  r.Lighting,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toVenueListResponse(cards []views.VenueCard) venueListResponse {
	items := make([]venueCardResponse, 0, len(cards))
	for _, c := range cards {
		items = append(items, venueCardResponse{
			venueResponse: toVenueResponse(c.Venue),
			CourtsCount:   c.CourtsCount,
			AvgRating:     c.AvgRating,
			Label:         c.Label,
		})
	}
	return venueListResponse{Items: items}
}

func toVenueDetailResponse(d views.VenueDetail) venueDetailResponse {
	courts := make([]courtCardResponse, 0, len(d.Courts))
	for _, c := range d.Courts {
		courts = append(courts, courtCardResponse{
			courtResponse: toCourtResponse(c.Court),
			RatingsCount:  c.RatingsCount,
			AvgRating:     c.AvgRating,
		})
	}
	return venueDetailResponse{
		Venue:       toVenueResponse(d.Venue),
		Courts:      courts,
		CourtsCount: d.CourtsCount,
		AvgRating:   d.AvgRating,
	}
}

func toCourtDetailResponse(d views.CourtDetail) courtDetailResponse {
	attrs := make([]attributeResponse, 0, len(d.Attributes))
	for _, a := range d.Attributes {
		attrs = append(attrs, attributeResponse{Name: a.Name, Value: a.Value, Percent: a.Percent})
	}
	ratings := make([]ratingEntryResponse, 0, len(d.Ratings))
	for _, r := range d.Ratings {
		ratings = append(ratings, ratingEntryResponse{
			ratingResponse: toRatingResponse(r.Rating),
			Author:         r.Author,
			Recency:        r.Recency,
		})
	}
	return courtDetailResponse{
		Court:        toCourtResponse(d.Court),
		RatingsCount: d.RatingsCount,
		AvgRating:    d.AvgRating,
		Attributes:   attrs,
		Ratings:      ratings,
	}
}

func toProfileResponse(p domain.Profile) profileResponse {
	return profileResponse{
		ID:         p.ID,
		Username:   p.Username,
		FullName:   p.FullName,
		AvatarURL:  p.AvatarURL,
		Tier:       string(p.Tier),
		Subscribed: p.Tier.Subscribed(),
	}
}

func toPlanResponse(p checkout.Plan) planResponse {
	return planResponse{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Mode:        p.Mode,
	}
}
