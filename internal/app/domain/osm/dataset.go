package osm

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// amenityRecord is one line of the gzipped line-delimited JSON amenity
// dump (OSM extract format).
type amenityRecord struct {
	Lat     float64           `json:"lat"`
	Lon     float64           `json:"lon"`
	Amenity string            `json:"amenity"`
	Name    string            `json:"name"`
	Tags    map[string]string `json:"tags"`
}

// LoadDataset reads a gzipped line-delimited JSON amenity dump into the
// base POI catalog. Nameless records are dropped, matching the source
// dataset's cleaning step; malformed lines are skipped and counted, a few
// bad rows should not sink the whole catalog.
func LoadDataset(path string, logger *zap.Logger) ([]models.PointOfInterest, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening amenity dataset %s", path)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "reading gzip header")
	}
	defer gz.Close()

	var pois []models.PointOfInterest
	skipped := 0
	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec amenityRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			skipped++
			continue
		}
		if strings.TrimSpace(rec.Name) == "" {
			continue
		}
		coord := models.Coordinate{Lat: rec.Lat, Lon: rec.Lon}
		if !coord.Valid() {
			skipped++
			continue
		}
		pois = append(pois, models.PointOfInterest{
			Name:     rec.Name,
			Category: rec.Amenity,
			Coord:    coord,
			Tags:     rec.Tags,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning amenity dataset")
	}

	logger.Info("amenity dataset loaded",
		zap.String("path", path),
		zap.Int("pois", len(pois)),
		zap.Int("skipped", skipped))
	return pois, nil
}
