package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// Service resolves a free-text address to a coordinate.
type Service interface {
	Geocode(ctx context.Context, address string) (models.Coordinate, error)
}

var _ Service = (*NominatimClient)(nil)

// NominatimClient geocodes through a Nominatim-compatible endpoint.
// Nominatim's usage policy allows one request per second, so calls go
// through a rate limiter; resolved addresses are cached since they do not
// move.
type NominatimClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	logger  *zap.Logger
}

func NewNominatimClient(baseURL string, logger *zap.Logger) *NominatimClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NominatimClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		cache:   cache.New(24*time.Hour, time.Hour),
		logger:  logger,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves address to a coordinate. Returns models.ErrNotFound for
// an unknown address and models.ErrUnavailable when the endpoint cannot be
// reached; the caller decides whether to retry or degrade.
func (c *NominatimClient) Geocode(ctx context.Context, address string) (models.Coordinate, error) {
	if cached, found := c.cache.Get(address); found {
		return cached.(models.Coordinate), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return models.Coordinate{}, err
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return models.Coordinate{}, errors.Wrap(err, "building geocode request")
	}
	req.Header.Set("User-Agent", "wayfarer/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: geocoding: %v", models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, fmt.Errorf("%w: geocoding returned status %d", models.ErrUnavailable, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinate{}, errors.Wrap(err, "decoding geocode response")
	}
	if len(results) == 0 {
		return models.Coordinate{}, fmt.Errorf("%w: address %q", models.ErrNotFound, address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinate{}, errors.Wrap(err, "parsing latitude")
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinate{}, errors.Wrap(err, "parsing longitude")
	}

	coord := models.Coordinate{Lat: lat, Lon: lon}
	if !coord.Valid() {
		return models.Coordinate{}, fmt.Errorf("%w: geocoder returned out-of-range coordinate", models.ErrValidation)
	}

	c.cache.Set(address, coord, cache.DefaultExpiration)
	c.logger.Debug("address geocoded",
		zap.String("address", address),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))
	return coord, nil
}
