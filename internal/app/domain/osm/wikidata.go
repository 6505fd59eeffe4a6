package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// WikidataInfo is the knowledge-base record backing a POI.
type WikidataInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// WikidataClient fetches labels and descriptions from a Wikidata SPARQL
// endpoint. Enrichment is best effort: a failed lookup is logged and the
// POI keeps its dataset name.
type WikidataClient struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewWikidataClient(endpoint string, logger *zap.Logger) *WikidataClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WikidataClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// Lookup fetches the English label and description for a Wikidata id.
func (c *WikidataClient) Lookup(ctx context.Context, wikidataID string) (*WikidataInfo, error) {
	query := fmt.Sprintf(`SELECT ?itemLabel ?description WHERE {
  wd:%s rdfs:label ?itemLabel.
  FILTER(LANG(?itemLabel) = "en").
  OPTIONAL { wd:%s schema:description ?description.
             FILTER(LANG(?description) = "en") }
}`, wikidataID, wikidataID)

	q := url.Values{}
	q.Set("query", query)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building sparql request")
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", "wayfarer/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: wikidata: %v", models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: wikidata returned status %d", models.ErrUnavailable, resp.StatusCode)
	}

	var body sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "decoding sparql response")
	}
	if len(body.Results.Bindings) == 0 {
		return nil, fmt.Errorf("%w: wikidata id %s", models.ErrNotFound, wikidataID)
	}

	binding := body.Results.Bindings[0]
	return &WikidataInfo{
		Label:       binding["itemLabel"].Value,
		Description: binding["description"].Value,
	}, nil
}

// Enrich looks up every POI carrying a wikidata tag, fills in missing
// names and stores the knowledge-base description under the "description"
// tag. Lookup failures never fail the batch; the POI keeps whatever it had.
func (c *WikidataClient) Enrich(ctx context.Context, pois []models.PointOfInterest) []models.PointOfInterest {
	out := make([]models.PointOfInterest, len(pois))
	copy(out, pois)
	enriched := 0
	for i := range out {
		id := out[i].WikidataID()
		if id == "" {
			continue
		}
		if out[i].Name != "" && out[i].Tags["description"] != "" {
			continue
		}
		info, err := c.Lookup(ctx, id)
		if err != nil {
			c.logger.Debug("wikidata enrichment skipped",
				zap.String("wikidata_id", id),
				zap.Error(err))
			continue
		}
		if out[i].Name == "" && info.Label != "" {
			out[i].Name = info.Label
		}
		if info.Description != "" && out[i].Tags["description"] == "" {
			// Tag maps are shared with the caller's slice; copy before adding.
			tags := make(map[string]string, len(out[i].Tags)+1)
			for k, v := range out[i].Tags {
				tags[k] = v
			}
			tags["description"] = info.Description
			out[i].Tags = tags
		}
		enriched++
	}
	if enriched > 0 {
		c.logger.Info("wikidata enrichment complete", zap.Int("enriched", enriched))
	}
	return out
}
