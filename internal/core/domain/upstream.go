package domain

// Upstream item shapes. Fields mirror the providers' JSON; optional ones are pointers
// so that an absent value stays absent after normalization.

// GeocodeResult is the first match of a geocoding lookup.
type GeocodeResult struct {
	FormattedAddress string  `json:"formatted_address"`
	Latitude         float64 `json:"lat"`
	Longitude        float64 `json:"lng"`
}

// ForecastItem is one entry of a daily forecast.
type ForecastItem struct {
	Time    int64   `json:"time"`
	Summary *string `json:"summary"`
}

// BusinessItem is one business listing.
type BusinessItem struct {
	Name     *string  `json:"name"`
	ImageURL *string  `json:"image_url"`
	Price    *string  `json:"price"`
	Rating   *float64 `json:"rating"`
	URL      *string  `json:"url"`
}

// MovieItem is one movie search result.
type MovieItem struct {
	Title       *string  `json:"title"`
	Overview    *string  `json:"overview"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int     `json:"vote_count"`
	PosterPath  *string  `json:"poster_path"`
	Popularity  *float64 `json:"popularity"`
	ReleaseDate *string  `json:"release_date"`
}

// TrailItem is one trail listing.
type TrailItem struct {
	Name            *string  `json:"name"`
	Location        *string  `json:"location"`
	Length          *float64 `json:"length"`
	Stars           *float64 `json:"stars"`
	StarVotes       *int     `json:"starVotes"`
	Summary         *string  `json:"summary"`
	URL             *string  `json:"url"`
	ConditionStatus *string  `json:"conditionStatus"`
	ConditionDate   *string  `json:"conditionDate"`
}
