package services

import (
	"context"

	"github.com/date-spark/api-go/config"
	"github.com/date-spark/api-go/types"
)

// LocationProvider supplies a single current-coordinate reading. The real
// provider lives on the device; the service side only carries a configured
// fallback, so failure handling stays at "denied means halt".
type LocationProvider interface {
	Current(ctx context.Context) (types.Coordinates, error)
}

// StaticLocationProvider serves the coordinate configured at startup.
type StaticLocationProvider struct {
	coords types.Coordinates
	ok     bool
}

func NewStaticLocationProvider(cfg *config.AppConfig) *StaticLocationProvider {
	return &StaticLocationProvider{
		coords: types.Coordinates{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng},
		ok:     cfg.HasDefaultLocation,
	}
}

func (p *StaticLocationProvider) Current(ctx context.Context) (types.Coordinates, error) {
	if !p.ok {
		return types.Coordinates{}, types.PermissionDeniedError(
			"no location available; pass lat/lng explicitly or set DEFAULT_LAT and DEFAULT_LNG")
	}
	return p.coords, nil
}
