package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/route"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

var _ route.RoadNetwork = (*OSRMClient)(nil)

// OSRMClient answers road-network queries through an OSRM-compatible
// endpoint. Node ids are the snapped "lon,lat" locations OSRM itself works
// with. All calls are bounded by the HTTP client timeout on top of the
// caller's context.
type OSRMClient struct {
	baseURL string
	profile string
	client  *http.Client
	logger  *zap.Logger
}

func NewOSRMClient(baseURL, profile string, logger *zap.Logger) *OSRMClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if profile == "" {
		profile = "foot"
	}
	return &OSRMClient{
		baseURL: baseURL,
		profile: profile,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type nearestResponse struct {
	Code      string `json:"code"`
	Waypoints []struct {
		Location [2]float64 `json:"location"` // lon, lat
	} `json:"waypoints"`
}

func (c *OSRMClient) NearestNode(ctx context.Context, coord models.Coordinate) (route.NodeID, error) {
	u := fmt.Sprintf("%s/nearest/v1/%s/%f,%f?number=1", c.baseURL, c.profile, coord.Lon, coord.Lat)
	var body nearestResponse
	if err := c.get(ctx, u, &body); err != nil {
		return "", err
	}
	if body.Code != "Ok" || len(body.Waypoints) == 0 {
		return "", fmt.Errorf("%w: no road node near (%f, %f)", models.ErrNoPath, coord.Lat, coord.Lon)
	}
	loc := body.Waypoints[0].Location
	return route.NodeID(fmt.Sprintf("%f,%f", loc[0], loc[1])), nil
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"` // lon, lat
		} `json:"geometry"`
	} `json:"routes"`
}

func (c *OSRMClient) ShortestPath(ctx context.Context, from, to route.NodeID) ([]models.Coordinate, error) {
	u := fmt.Sprintf("%s/route/v1/%s/%s;%s?geometries=geojson&overview=full", c.baseURL, c.profile, from, to)
	var body routeResponse
	if err := c.get(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Code == "NoRoute" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("%w: %s -> %s", models.ErrNoPath, from, to)
	}
	if body.Code != "Ok" {
		return nil, fmt.Errorf("%w: osrm returned code %s", models.ErrUnavailable, body.Code)
	}

	coords := body.Routes[0].Geometry.Coordinates
	path := make([]models.Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, models.Coordinate{Lat: c[1], Lon: c[0]})
	}
	return path, nil
}

func (c *OSRMClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building osrm request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: osrm: %v", models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: osrm returned status %d", models.ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding osrm response")
	}
	return nil
}
