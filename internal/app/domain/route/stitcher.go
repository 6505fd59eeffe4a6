package route

import (
	"context"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// RoadNetwork is the road-network routing collaborator. Implementations
// involve network I/O and must bound their own timeouts; the stitcher only
// passes the context through.
type RoadNetwork interface {
	// NearestNode snaps a coordinate onto the street graph.
	NearestNode(ctx context.Context, c models.Coordinate) (NodeID, error)
	// ShortestPath returns the path between two snapped nodes, or
	// models.ErrNoPath when the graph has no connection.
	ShortestPath(ctx context.Context, from, to NodeID) ([]models.Coordinate, error)
}

// NodeID identifies a node on the road network graph.
type NodeID string

// Stitcher converts an ordered stop-coordinate sequence into a continuous
// road-accurate path by chaining collaborator path segments.
type Stitcher struct {
	network RoadNetwork
	logger  *zap.Logger
}

func NewStitcher(network RoadNetwork, logger *zap.Logger) *Stitcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stitcher{network: network, logger: logger}
}

// Stitch routes each consecutive coordinate pair and concatenates the
// segments, dropping the duplicated joint between them. A pair with no
// path is skipped and counted as a gap; the route stays usable with a
// visible discontinuity rather than failing whole.
func (s *Stitcher) Stitch(ctx context.Context, coords []models.Coordinate) ([]models.Coordinate, int) {
	if len(coords) < 2 {
		return coords, 0
	}

	var path []models.Coordinate
	gaps := 0
	for i := 0; i < len(coords)-1; i++ {
		segment, err := s.segment(ctx, coords[i], coords[i+1])
		if err != nil {
			gaps++
			s.logger.Warn("route segment skipped",
				zap.Float64("from_lat", coords[i].Lat),
				zap.Float64("from_lon", coords[i].Lon),
				zap.Float64("to_lat", coords[i+1].Lat),
				zap.Float64("to_lon", coords[i+1].Lon),
				zap.Error(err))
			continue
		}
		if len(path) > 0 && len(segment) > 0 && path[len(path)-1] == segment[0] {
			segment = segment[1:]
		}
		path = append(path, segment...)
	}
	return path, gaps
}

func (s *Stitcher) segment(ctx context.Context, from, to models.Coordinate) ([]models.Coordinate, error) {
	a, err := s.network.NearestNode(ctx, from)
	if err != nil {
		return nil, err
	}
	b, err := s.network.NearestNode(ctx, to)
	if err != nil {
		return nil, err
	}
	return s.network.ShortestPath(ctx, a, b)
}
