// Package openfda queries the openFDA drug-shortage endpoint and normalizes
// its records into keyed collections.
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/pkg/models"
)

const DefaultBaseURL = "https://api.fda.gov/drug/shortages.json"

// Query is one request against the shortage endpoint.
type Query struct {
	Search string
	Limit  int
	Skip   int
}

type Client struct {
	logger  *zap.Logger
	baseURL string
	client  *http.Client
}

func New(logger *zap.Logger, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// candidate fields, most specific first, from which a record's identity and
// display fields are derived
var (
	keyFields = []string{"id", "shortage_id", "shortage_number", "set_id", "application_number", "product_ndc"}

	drugNameFields = []string{"drug_name", "proprietary_name", "generic_name", "product_description"}

	statusFields = []string{"status", "shortage_status", "current_status", "availability_status"}

	reasonFields = []string{"reason", "reason_for_shortage", "shortage_reason"}

	updatedFields = []string{"last_updated", "revision_date", "updated_at", "created"}
)

// Fetch queries the endpoint once and returns the normalized keyed collection
// along with the raw result count. Every failure wraps models.ErrFetchFailed
// so the caller aborts before any diff or persistence happens.
func (c *Client) Fetch(ctx context.Context, q Query) (models.RecordCollection, int, error) {
	reqURL := c.buildQueryURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", models.ErrFetchFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: openFDA network error: %v", models.ErrFetchFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close the openFDA response body", zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, fmt.Errorf("%w: openFDA HTTP error %d: %s", models.ErrFetchFailed, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, 0, fmt.Errorf("%w: malformed response: %v", models.ErrFetchFailed, err)
	}

	rawResults, ok := payload["results"]
	if !ok {
		return models.RecordCollection{}, 0, nil
	}
	results, ok := rawResults.([]interface{})
	if !ok {
		return nil, 0, fmt.Errorf("%w: unexpected API response: 'results' is not a list", models.ErrFetchFailed)
	}

	collection := models.RecordCollection{}
	count := 0
	for _, item := range results {
		raw, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		count++
		record := Normalize(raw)
		collection[record.Key()] = record
	}

	c.logger.Debug("fetched shortage records",
		zap.String("url", reqURL),
		zap.Int("records", count))

	return collection, count, nil
}

func (c *Client) buildQueryURL(q Query) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("skip", strconv.Itoa(q.Skip))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	return c.baseURL + "?" + params.Encode()
}

// Normalize derives the stable identity and display fields of one raw record.
// The raw record is kept whole under "raw" so no upstream data is lost.
func Normalize(raw map[string]interface{}) models.Record {
	return models.Record{
		"key":          recordKey(raw),
		"drug_name":    pickFirst(raw, drugNameFields),
		"status":       pickFirst(raw, statusFields),
		"reason":       pickFirst(raw, reasonFields),
		"last_updated": pickFirst(raw, updatedFields),
		"raw":          raw,
	}
}

// recordKey falls back to the canonical JSON of the whole record when no
// identifier field is present, so identity stays stable for a given payload.
func recordKey(raw map[string]interface{}) string {
	if v := pickFirst(raw, keyFields); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	canonical, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprint(raw)
	}
	return string(canonical)
}

func pickFirst(raw map[string]interface{}, fields []string) interface{} {
	for _, f := range fields {
		v, ok := raw[f]
		if !ok || v == nil || v == "" {
			continue
		}
		return v
	}
	return nil
}
