package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/core/usecases"
)

type mockWeatherProvider struct {
	calls int
	fn    func(ctx context.Context, at domain.GeoPoint) ([]domain.ForecastItem, error)
}

func (m *mockWeatherProvider) DailyForecast(ctx context.Context, at domain.GeoPoint) ([]domain.ForecastItem, error) {
	m.calls++
	return m.fn(ctx, at)
}

type mockBusinessSearcher struct {
	fn func(ctx context.Context, location string) ([]domain.BusinessItem, error)
}

func (m *mockBusinessSearcher) SearchBusinesses(ctx context.Context, location string) ([]domain.BusinessItem, error) {
	return m.fn(ctx, location)
}

type mockMovieSearcher struct {
	fn func(ctx context.Context, query string) ([]domain.MovieItem, error)
}

func (m *mockMovieSearcher) SearchMovies(ctx context.Context, query string) ([]domain.MovieItem, error) {
	return m.fn(ctx, query)
}

type mockTrailFinder struct {
	fn func(ctx context.Context, at domain.GeoPoint) ([]domain.TrailItem, error)
}

func (m *mockTrailFinder) TrailsNear(ctx context.Context, at domain.GeoPoint) ([]domain.TrailItem, error) {
	return m.fn(ctx, at)
}

func TestWeatherService_Forecast(t *testing.T) {
	provider := &mockWeatherProvider{
		fn: func(ctx context.Context, at domain.GeoPoint) ([]domain.ForecastItem, error) {
			return []domain.ForecastItem{
				{Time: 1500000000, Summary: strPtr("Partly cloudy.")},
				{Time: 1500086400},
			}, nil
		},
	}
	svc := usecases.NewWeatherService(provider, nil, 0, time.UTC)

	days, err := svc.Forecast(context.Background(), domain.GeoPoint{Lat: 47.6, Lon: -122.3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Time != "Fri Jul 14 2017" || days[0].Forecast == nil || *days[0].Forecast != "Partly cloudy." {
		t.Errorf("unexpected first day %+v", days[0])
	}
	if days[1].Forecast != nil {
		t.Errorf("expected absent forecast, got %q", *days[1].Forecast)
	}
}

func TestWeatherService_InvalidPoint(t *testing.T) {
	provider := &mockWeatherProvider{}
	svc := usecases.NewWeatherService(provider, nil, 0, nil)

	_, err := svc.Forecast(context.Background(), domain.GeoPoint{Lat: 91})
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if provider.calls != 0 {
		t.Error("expected no upstream call for an invalid point")
	}
}

func TestWeatherService_ReadThroughCache(t *testing.T) {
	provider := &mockWeatherProvider{
		fn: func(ctx context.Context, at domain.GeoPoint) ([]domain.ForecastItem, error) {
			return []domain.ForecastItem{{Time: 1500000000, Summary: strPtr("Rain.")}}, nil
		},
	}
	cache := newMemCache()
	svc := usecases.NewWeatherService(provider, cache, 60, time.UTC)
	at := domain.GeoPoint{Lat: 47.6, Lon: -122.3}

	for i := 0; i < 3; i++ {
		days, err := svc.Forecast(context.Background(), at)
		if err != nil {
			t.Fatal(err)
		}
		if len(days) != 1 || *days[0].Forecast != "Rain." {
			t.Fatalf("unexpected days %+v", days)
		}
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 upstream call with caching, got %d", provider.calls)
	}
	if cache.ttls["weather:47.6000:-122.3000"] != 60 {
		t.Errorf("expected cache entry with ttl 60, got %v", cache.ttls)
	}
}

func TestWeatherService_ErrorNotCached(t *testing.T) {
	provider := &mockWeatherProvider{
		fn: func(ctx context.Context, at domain.GeoPoint) ([]domain.ForecastItem, error) {
			return nil, errors.New("boom")
		},
	}
	cache := newMemCache()
	svc := usecases.NewWeatherService(provider, cache, 60, nil)

	if _, err := svc.Forecast(context.Background(), domain.GeoPoint{}); err == nil {
		t.Fatal("expected error")
	}
	if len(cache.data) != 0 {
		t.Error("failed fetch must not be cached")
	}
}

func TestBusinessService_Search(t *testing.T) {
	var gotLocation string
	svc := usecases.NewBusinessService(&mockBusinessSearcher{
		fn: func(ctx context.Context, location string) ([]domain.BusinessItem, error) {
			gotLocation = location
			rating := 4.5
			return []domain.BusinessItem{{Name: strPtr("Pike Place Chowder"), Rating: &rating, Price: strPtr("$$")}}, nil
		},
	}, nil, 0)

	got, err := svc.Search(context.Background(), "seattle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLocation != "seattle" {
		t.Errorf("expected location forwarded, got %q", gotLocation)
	}
	if len(got) != 1 || *got[0].Name != "Pike Place Chowder" || *got[0].Rating != 4.5 || got[0].URL != nil {
		t.Errorf("unexpected businesses %+v", got)
	}
}

func TestBusinessService_EmptyResultIsEmptySlice(t *testing.T) {
	svc := usecases.NewBusinessService(&mockBusinessSearcher{
		fn: func(ctx context.Context, location string) ([]domain.BusinessItem, error) { return nil, nil },
	}, nil, 0)

	got, err := svc.Search(context.Background(), "nowhere")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestBusinessService_EmptyLocation(t *testing.T) {
	svc := usecases.NewBusinessService(&mockBusinessSearcher{}, nil, 0)

	if _, err := svc.Search(context.Background(), ""); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestMovieService_Search(t *testing.T) {
	svc := usecases.NewMovieService(&mockMovieSearcher{
		fn: func(ctx context.Context, query string) ([]domain.MovieItem, error) {
			return []domain.MovieItem{
				{Title: strPtr("Sleepless in Seattle"), PosterPath: strPtr("/abc.jpg")},
				{Title: strPtr("No Poster")},
			}, nil
		},
	}, nil, 0)

	got, err := svc.Search(context.Background(), "seattle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(got))
	}
	if got[0].ImageURL == nil || *got[0].ImageURL != "https://image.tmdb.org/t/p/w500/abc.jpg" {
		t.Errorf("unexpected image_url %v", got[0].ImageURL)
	}
	if got[1].ImageURL != nil {
		t.Errorf("expected absent image_url, got %q", *got[1].ImageURL)
	}
}

func TestMovieService_UpstreamError(t *testing.T) {
	svc := usecases.NewMovieService(&mockMovieSearcher{
		fn: func(ctx context.Context, query string) ([]domain.MovieItem, error) {
			return nil, errors.New("401 unauthorized")
		},
	}, nil, 0)

	if _, err := svc.Search(context.Background(), "seattle"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTrailService_Near(t *testing.T) {
	var gotPoint domain.GeoPoint
	svc := usecases.NewTrailService(&mockTrailFinder{
		fn: func(ctx context.Context, at domain.GeoPoint) ([]domain.TrailItem, error) {
			gotPoint = at
			return []domain.TrailItem{{
				Name:            strPtr("Rattlesnake Ledge"),
				ConditionStatus: strPtr("All Clear"),
				ConditionDate:   strPtr("2018-07-21 00:00:00"),
			}}, nil
		},
	}, nil, 0)

	at := domain.GeoPoint{Lat: 47.43, Lon: -121.77}
	got, err := svc.Near(context.Background(), at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPoint != at {
		t.Errorf("expected point forwarded, got %+v", gotPoint)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 trail, got %d", len(got))
	}
	tr := got[0]
	if *tr.Conditions != "All Clear" || *tr.ConditionDate != "2018-07-21" || *tr.ConditionTime != "00:00:00" {
		t.Errorf("unexpected trail %+v", tr)
	}
}
