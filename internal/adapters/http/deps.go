package http

import (
	"github.com/nats-io/nats.go"
	"github.com/samirrijal/cityexplorer/internal/adapters/postgres"
	"github.com/samirrijal/cityexplorer/internal/adapters/valkey"
	"github.com/samirrijal/cityexplorer/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Locations  *usecases.LocationService
	Weather    *usecases.WeatherService
	Businesses *usecases.BusinessService
	Movies     *usecases.MovieService
	Trails     *usecases.TrailService
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache
}
