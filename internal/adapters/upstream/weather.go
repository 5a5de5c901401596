package upstream

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// DarkSky implements ports.WeatherProvider. The API key is part of the path.
type DarkSky struct {
	client  *Client
	baseURL string
	apiKey  string
}

func NewDarkSky(client *Client, baseURL, apiKey string) *DarkSky {
	return &DarkSky{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

type forecastResponse struct {
	Daily struct {
		Data []domain.ForecastItem `json:"data"`
	} `json:"daily"`
}

// DailyForecast returns the daily block of the forecast at the given point.
func (d *DarkSky) DailyForecast(ctx context.Context, at domain.GeoPoint) ([]domain.ForecastItem, error) {
	coords := strconv.FormatFloat(at.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(at.Lon, 'f', -1, 64)

	var body forecastResponse
	err := d.client.Get(ctx, Request{
		API:   "weather",
		URL:   d.baseURL + "/" + url.PathEscape(d.apiKey) + "/" + coords,
		Query: url.Values{"exclude": {"currently,minutely,hourly,flags"}},
	}, &body)
	if err != nil {
		return nil, err
	}
	return body.Daily.Data, nil
}
