package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// GoogleGeocoder implements ports.Geocoder with the Google Geocoding API.
type GoogleGeocoder struct {
	client  *Client
	baseURL string
	apiKey  string
}

// NewGoogleGeocoder creates a geocoder against baseURL.
func NewGoogleGeocoder(client *Client, baseURL, apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{client: client, baseURL: baseURL, apiKey: apiKey}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode returns the first match for query.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	var body geocodeResponse
	err := g.client.Get(ctx, Request{
		API: "geocode",
		URL: g.baseURL,
		Query: url.Values{
			"address": {query},
			"key":     {g.apiKey},
		},
	}, &body)
	if err != nil {
		return nil, err
	}

	switch body.Status {
	case "", "OK":
	case "ZERO_RESULTS":
		return nil, fmt.Errorf("%w: geocode: %q", ErrNoResults, query)
	default:
		return nil, fmt.Errorf("%w: geocode: status %s: %s", ErrUpstream, body.Status, body.ErrorMessage)
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("%w: geocode: %q", ErrNoResults, query)
	}

	first := body.Results[0]
	return &domain.GeocodeResult{
		FormattedAddress: first.FormattedAddress,
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
	}, nil
}
