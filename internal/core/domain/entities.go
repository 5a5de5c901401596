package domain

import (
	"time"
)

// LocationRecord is a persisted geocoding result keyed by the caller's search query.
type LocationRecord struct {
	ID             int64     `json:"id,omitempty"`
	SearchQuery    string    `json:"search_query"`
	FormattedQuery string    `json:"formatted_query"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	CreatedAt      time.Time `json:"created_at"`
}

// Point returns the record's coordinate.
func (r LocationRecord) Point() GeoPoint {
	return GeoPoint{Lat: r.Latitude, Lon: r.Longitude}
}

// WeatherDay is one day of a daily forecast.
type WeatherDay struct {
	Time     string  `json:"time"`
	Forecast *string `json:"forecast,omitempty"`
}

// Business is a business listing from a local search.
type Business struct {
	Name     *string  `json:"name,omitempty"`
	ImageURL *string  `json:"image_url,omitempty"`
	Price    *string  `json:"price,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	URL      *string  `json:"url,omitempty"`
}

// Movie is a movie search result.
type Movie struct {
	Title        *string  `json:"title,omitempty"`
	Overview     *string  `json:"overview,omitempty"`
	AverageVotes *float64 `json:"average_votes,omitempty"`
	TotalVotes   *int     `json:"total_votes,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Popularity   *float64 `json:"popularity,omitempty"`
	ReleasedOn   *string  `json:"released_on,omitempty"`
}

// Trail is a hiking trail near a point.
type Trail struct {
	Name          *string  `json:"name,omitempty"`
	Location      *string  `json:"location,omitempty"`
	Length        *float64 `json:"length,omitempty"`
	Stars         *float64 `json:"stars,omitempty"`
	StarVotes     *int     `json:"star_votes,omitempty"`
	Summary       *string  `json:"summary,omitempty"`
	TrailURL      *string  `json:"trail_url,omitempty"`
	Conditions    *string  `json:"conditions,omitempty"`
	ConditionDate *string  `json:"condition_date,omitempty"`
	ConditionTime *string  `json:"condition_time,omitempty"`
}

// LocationEvent is published when a new location is cached.
type LocationEvent struct {
	Type     string         `json:"type"`
	Location LocationRecord `json:"location"`
	Time     time.Time      `json:"time"`
}

// PurgeRequest asks for rows tied to a location to be removed from the given tables.
type PurgeRequest struct {
	LocationID int64    `json:"location_id"`
	Tables     []string `json:"tables"`
}
