package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
}

// CatalogConfig selects where the amenity catalog comes from.
type CatalogConfig struct {
	// Source is "file" or "postgres".
	Source      string
	DatasetPath string
	Regions     []string
	MinTagCount int
}

// CollaboratorsConfig holds the external service endpoints.
type CollaboratorsConfig struct {
	NominatimURL string
	OverpassURL  string
	OSRMURL      string
	OSRMProfile  string
	WikidataURL  string
}

type Config struct {
	ServerPort    string
	MetricsPort   string
	Catalog       CatalogConfig
	Collaborators CollaboratorsConfig
	Repositories  RepositoriesConfig
	// ServiceRegion, when set, restricts valid start coordinates.
	ServiceRegion *models.BoundingBox
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8091"),
		MetricsPort: getEnvOrDefault("METRICS_PORT", "9092"),
		Catalog: CatalogConfig{
			Source:      getEnvOrDefault("CATALOG_SOURCE", "file"),
			DatasetPath: getEnvOrDefault("CATALOG_DATASET_PATH", "data/amenities-vancouver.json.gz"),
			Regions:     splitList(getEnvOrDefault("CATALOG_REGIONS", "Vancouver,Burnaby,Richmond,North Vancouver,Surrey")),
			MinTagCount: getEnvIntOrDefault("CATALOG_MIN_TAG_COUNT", 3),
		},
		Collaborators: CollaboratorsConfig{
			NominatimURL: getEnvOrDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
			OverpassURL:  getEnvOrDefault("OVERPASS_URL", "https://overpass-api.de"),
			OSRMURL:      getEnvOrDefault("OSRM_URL", "https://router.project-osrm.org"),
			OSRMProfile:  getEnvOrDefault("OSRM_PROFILE", "foot"),
			WikidataURL:  getEnvOrDefault("WIKIDATA_SPARQL_URL", "https://query.wikidata.org/sparql"),
		},
		Repositories: RepositoriesConfig{
			Postgres: PostgresConfig{
				Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:     getEnvOrDefault("POSTGRES_PORT", "5454"),
				DB:       getEnvOrDefault("POSTGRES_DB", "wayfarer"),
				Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
				SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxConns: 30,
				MinConns: 5,
			},
		},
	}

	region, err := loadServiceRegion()
	if err != nil {
		return nil, err
	}
	cfg.ServiceRegion = region

	if cfg.Catalog.Source == "postgres" && cfg.Repositories.Postgres.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD environment variable is required when CATALOG_SOURCE=postgres")
	}

	return cfg, nil
}

// loadServiceRegion reads the optional bounding box; all four corners must
// be present or absent together.
func loadServiceRegion() (*models.BoundingBox, error) {
	keys := []string{"REGION_MIN_LAT", "REGION_MAX_LAT", "REGION_MIN_LON", "REGION_MAX_LON"}
	values := make([]float64, len(keys))
	set := 0
	for i, key := range keys {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		values[i] = v
		set++
	}
	switch set {
	case 0:
		return nil, nil
	case len(keys):
		return &models.BoundingBox{
			MinLat: values[0], MaxLat: values[1],
			MinLon: values[2], MaxLon: values[3],
		}, nil
	default:
		return nil, fmt.Errorf("service region requires all of %s", strings.Join(keys, ", "))
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
