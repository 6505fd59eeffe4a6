package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// Fetcher acquires POIs for named regions from an external geographic
// database. May return fewer results than regions on partial failure.
type Fetcher interface {
	FetchByCategory(ctx context.Context, regions []string, categories []string) ([]models.PointOfInterest, error)
}

var _ Fetcher = (*OverpassClient)(nil)

// OverpassClient fetches amenities from an Overpass-compatible endpoint.
// Region fetches fan out concurrently; a failed region is logged and
// contributes an empty slice rather than aborting the whole fetch, so the
// planner's degrade-gracefully policies apply uniformly downstream.
type OverpassClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewOverpassClient(baseURL string, logger *zap.Logger) *OverpassClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverpassClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type overpassResponse struct {
	Elements []struct {
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// FetchByCategory queries every region concurrently and merges the
// results. The returned error is always nil by contract; failures degrade
// to missing regions.
func (c *OverpassClient) FetchByCategory(ctx context.Context, regions []string, categories []string) ([]models.PointOfInterest, error) {
	var (
		mu     sync.Mutex
		merged []models.PointOfInterest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, region := range regions {
		g.Go(func() error {
			pois, err := c.fetchRegion(gctx, region, categories)
			if err != nil {
				c.logger.Warn("region fetch failed, skipping",
					zap.String("region", region),
					zap.Error(err))
				return nil
			}
			mu.Lock()
			merged = append(merged, pois...)
			mu.Unlock()
			return nil
		})
	}
	// Errors are swallowed per region above; Wait only propagates context
	// cancellation.
	if err := g.Wait(); err != nil {
		return merged, err
	}
	return merged, nil
}

func (c *OverpassClient) fetchRegion(ctx context.Context, region string, categories []string) ([]models.PointOfInterest, error) {
	query := buildQuery(region, categories)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/interpreter", strings.NewReader("data="+query))
	if err != nil {
		return nil, errors.Wrap(err, "building overpass request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: overpass: %v", models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: overpass returned status %d", models.ErrUnavailable, resp.StatusCode)
	}

	var body overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "decoding overpass response")
	}

	pois := make([]models.PointOfInterest, 0, len(body.Elements))
	for _, el := range body.Elements {
		coord := models.Coordinate{Lat: el.Lat, Lon: el.Lon}
		if !coord.Valid() {
			continue
		}
		pois = append(pois, models.PointOfInterest{
			ID:       fmt.Sprintf("osm-%d", el.ID),
			Name:     el.Tags["name"],
			Category: el.Tags["amenity"],
			Coord:    coord,
			Tags:     el.Tags,
		})
	}
	return pois, nil
}

// buildQuery renders an OverpassQL query selecting nodes with any of the
// amenity categories inside the named area.
func buildQuery(region string, categories []string) string {
	regex := strings.Join(categories, "|")
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];")
	fmt.Fprintf(&b, "area[name=%q]->.searchArea;", region)
	fmt.Fprintf(&b, "node[\"amenity\"~\"^(%s)$\"](area.searchArea);", regex)
	b.WriteString("out body;")
	return b.String()
}
