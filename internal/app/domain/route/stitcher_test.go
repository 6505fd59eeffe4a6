package route

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// gridNetwork routes straight between snapped nodes and refuses pairs the
// test marked unreachable.
type gridNetwork struct {
	unreachable map[string]bool
}

func (n *gridNetwork) NearestNode(_ context.Context, c models.Coordinate) (NodeID, error) {
	return NodeID(fmt.Sprintf("%.3f,%.3f", c.Lat, c.Lon)), nil
}

func (n *gridNetwork) ShortestPath(_ context.Context, from, to NodeID) ([]models.Coordinate, error) {
	if n.unreachable[string(from)+">"+string(to)] {
		return nil, models.ErrNoPath
	}
	var a, b models.Coordinate
	fmt.Sscanf(string(from), "%f,%f", &a.Lat, &a.Lon)
	fmt.Sscanf(string(to), "%f,%f", &b.Lat, &b.Lon)
	mid := models.Coordinate{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}
	return []models.Coordinate{a, mid, b}, nil
}

func TestStitch(t *testing.T) {
	ctx := context.Background()
	coords := []models.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 0, Lon: 2},
	}

	t.Run("it chains segments and drops duplicated joints", func(t *testing.T) {
		s := NewStitcher(&gridNetwork{}, nil)
		path, gaps := s.Stitch(ctx, coords)

		assert.Zero(t, gaps)
		// Two 3-point segments sharing one joint.
		assert.Len(t, path, 5)
		assert.Equal(t, models.Coordinate{Lat: 0, Lon: 0}, path[0])
		assert.Equal(t, models.Coordinate{Lat: 0, Lon: 2}, path[4])
	})

	t.Run("it skips unreachable pairs and counts the gap", func(t *testing.T) {
		network := &gridNetwork{unreachable: map[string]bool{
			"0.000,0.000>0.000,1.000": true,
		}}
		s := NewStitcher(network, nil)
		path, gaps := s.Stitch(ctx, coords)

		assert.Equal(t, 1, gaps)
		// Only the second segment survives.
		assert.Len(t, path, 3)
		assert.Equal(t, models.Coordinate{Lat: 0, Lon: 1}, path[0])
	})

	t.Run("it passes short inputs through", func(t *testing.T) {
		s := NewStitcher(&gridNetwork{}, nil)
		single := []models.Coordinate{{Lat: 1, Lon: 1}}
		path, gaps := s.Stitch(ctx, single)
		assert.Zero(t, gaps)
		assert.Equal(t, single, path)
	})
}
