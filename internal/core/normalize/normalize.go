// Package normalize maps upstream result items onto the API's view objects.
// The functions are pure and never fail; absent upstream fields stay absent.
package normalize

import (
	"strings"
	"time"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// PosterBaseURL is the CDN prefix for movie poster paths.
const PosterBaseURL = "https://image.tmdb.org/t/p/w500"

// dayLayout renders e.g. "Fri Jul 14 2017", always 15 characters.
const dayLayout = "Mon Jan 02 2006"

// Weather converts one forecast entry. loc selects the calendar day; nil means UTC.
func Weather(item domain.ForecastItem, loc *time.Location) domain.WeatherDay {
	if loc == nil {
		loc = time.UTC
	}
	return domain.WeatherDay{
		Time:     time.Unix(item.Time, 0).In(loc).Format(dayLayout),
		Forecast: item.Summary,
	}
}

// Business selects the listing fields the API exposes.
func Business(item domain.BusinessItem) domain.Business {
	return domain.Business{
		Name:     item.Name,
		ImageURL: item.ImageURL,
		Price:    item.Price,
		Rating:   item.Rating,
		URL:      item.URL,
	}
}

// Movie selects movie fields and builds the full poster URL.
func Movie(item domain.MovieItem) domain.Movie {
	return domain.Movie{
		Title:        item.Title,
		Overview:     item.Overview,
		AverageVotes: item.VoteAverage,
		TotalVotes:   item.VoteCount,
		ImageURL:     posterURL(item.PosterPath),
		Popularity:   item.Popularity,
		ReleasedOn:   item.ReleaseDate,
	}
}

func posterURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	if strings.HasPrefix(*path, PosterBaseURL) {
		u := *path
		return &u
	}
	u := PosterBaseURL + *path
	return &u
}

// Trail selects trail fields and splits the condition timestamp into date and time.
func Trail(item domain.TrailItem) domain.Trail {
	t := domain.Trail{
		Name:       item.Name,
		Location:   item.Location,
		Length:     item.Length,
		Stars:      item.Stars,
		StarVotes:  item.StarVotes,
		Summary:    item.Summary,
		TrailURL:   item.URL,
		Conditions: item.ConditionStatus,
	}
	if item.ConditionDate != nil {
		date, clock, ok := strings.Cut(*item.ConditionDate, " ")
		t.ConditionDate = &date
		if ok {
			t.ConditionTime = &clock
		}
	}
	return t
}

// Map applies fn to every item. A nil input yields an empty, non-nil slice.
func Map[In, Out any](items []In, fn func(In) Out) []Out {
	out := make([]Out, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
