package upstream

import (
	"context"
	"net/url"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// Yelp implements ports.BusinessSearcher with the Yelp Fusion API.
type Yelp struct {
	client  *Client
	baseURL string
	apiKey  string
}

func NewYelp(client *Client, baseURL, apiKey string) *Yelp {
	return &Yelp{client: client, baseURL: baseURL, apiKey: apiKey}
}

type yelpResponse struct {
	Businesses []domain.BusinessItem `json:"businesses"`
}

// SearchBusinesses lists businesses around location. Yelp wants a bearer token.
func (y *Yelp) SearchBusinesses(ctx context.Context, location string) ([]domain.BusinessItem, error) {
	var body yelpResponse
	err := y.client.Get(ctx, Request{
		API:         "yelp",
		URL:         y.baseURL,
		Query:       url.Values{"location": {location}},
		BearerToken: y.apiKey,
	}, &body)
	if err != nil {
		return nil, err
	}
	return body.Businesses, nil
}
