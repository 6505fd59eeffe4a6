package osm

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// CatalogRepository reads the amenity catalog from storage. The dataset
// loader covers file-based deployments; this covers installs that keep the
// catalog in Postgres.
type CatalogRepository interface {
	GetByCategories(ctx context.Context, categories []string) ([]models.PointOfInterest, error)
	GetByBoundingBox(ctx context.Context, box models.BoundingBox) ([]models.PointOfInterest, error)
}

var _ CatalogRepository = (*PostgresCatalogRepository)(nil)

// PostgresCatalogRepository serves the amenity catalog from the amenities
// table. Read-only; the catalog is reference data and is never mutated by
// planning runs.
type PostgresCatalogRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresCatalogRepository(pool *pgxpool.Pool, logger *zap.Logger) *PostgresCatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresCatalogRepository{pool: pool, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// GetByCategories returns the catalog rows matching the given amenity
// categories; an empty list means the whole catalog.
func (r *PostgresCatalogRepository) GetByCategories(ctx context.Context, categories []string) ([]models.PointOfInterest, error) {
	query := psql.
		Select("id", "name", "amenity", "lat", "lon", "tags").
		From("amenities")
	if len(categories) > 0 {
		query = query.Where(sq.Eq{"amenity": categories})
	}
	return r.query(ctx, query)
}

func (r *PostgresCatalogRepository) GetByBoundingBox(ctx context.Context, box models.BoundingBox) ([]models.PointOfInterest, error) {
	query := psql.
		Select("id", "name", "amenity", "lat", "lon", "tags").
		From("amenities").
		Where(sq.And{
			sq.GtOrEq{"lat": box.MinLat}, sq.LtOrEq{"lat": box.MaxLat},
			sq.GtOrEq{"lon": box.MinLon}, sq.LtOrEq{"lon": box.MaxLon},
		})
	return r.query(ctx, query)
}

func (r *PostgresCatalogRepository) query(ctx context.Context, builder sq.SelectBuilder) ([]models.PointOfInterest, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building catalog query")
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying amenity catalog")
	}
	defer rows.Close()

	var pois []models.PointOfInterest
	for rows.Next() {
		var p models.PointOfInterest
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Coord.Lat, &p.Coord.Lon, &p.Tags); err != nil {
			return nil, errors.Wrap(err, "scanning amenity row")
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating amenity rows")
	}

	r.logger.Debug("catalog query complete", zap.Int("pois", len(pois)))
	return pois, nil
}
