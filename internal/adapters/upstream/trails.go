package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// HikingProject implements ports.TrailFinder.
type HikingProject struct {
	client      *Client
	baseURL     string
	apiKey      string
	maxDistance float64 // miles
}

func NewHikingProject(client *Client, baseURL, apiKey string, maxDistance float64) *HikingProject {
	return &HikingProject{client: client, baseURL: baseURL, apiKey: apiKey, maxDistance: maxDistance}
}

type trailsResponse struct {
	Success *int               `json:"success"`
	Message string             `json:"message"`
	Trails  []domain.TrailItem `json:"trails"`
}

// TrailsNear lists trails within the configured distance of at.
func (h *HikingProject) TrailsNear(ctx context.Context, at domain.GeoPoint) ([]domain.TrailItem, error) {
	var body trailsResponse
	err := h.client.Get(ctx, Request{
		API: "trails",
		URL: h.baseURL,
		Query: url.Values{
			"lat":         {strconv.FormatFloat(at.Lat, 'f', -1, 64)},
			"lon":         {strconv.FormatFloat(at.Lon, 'f', -1, 64)},
			"maxDistance": {strconv.FormatFloat(h.maxDistance, 'f', -1, 64)},
			"key":         {h.apiKey},
		},
	}, &body)
	if err != nil {
		return nil, err
	}
	if body.Success != nil && *body.Success == 0 {
		return nil, fmt.Errorf("%w: trails: %s", ErrUpstream, body.Message)
	}
	return body.Trails, nil
}
