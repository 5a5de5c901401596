package upstream

import (
	"context"
	"net/url"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// TMDB implements ports.MovieSearcher with The Movie Database v3 API.
type TMDB struct {
	client  *Client
	baseURL string
	apiKey  string
}

func NewTMDB(client *Client, baseURL, apiKey string) *TMDB {
	return &TMDB{client: client, baseURL: baseURL, apiKey: apiKey}
}

type movieResponse struct {
	Results []domain.MovieItem `json:"results"`
}

// SearchMovies returns the first page of title matches for query.
func (m *TMDB) SearchMovies(ctx context.Context, query string) ([]domain.MovieItem, error) {
	var body movieResponse
	err := m.client.Get(ctx, Request{
		API: "movies",
		URL: m.baseURL,
		Query: url.Values{
			"api_key": {m.apiKey},
			"query":   {query},
		},
	}, &body)
	if err != nil {
		return nil, err
	}
	return body.Results, nil
}
