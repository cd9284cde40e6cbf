package httpserver

import (
	"net/url"
	"testing"
)

func FuzzBuildVenueFilters(f *testing.F) {
	seeds := []string{
		"q=Riverside&city=Austin",
		"limit=abc",
		"limit=200",
		"cursor=eyJuYW1lIjoiQSIsImlkIjoiMSJ9",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		_, _ = buildVenueFilters(values)
	})
}
