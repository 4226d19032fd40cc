package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Kind identifies one of the regional datasets
type Kind string

const (
	KindDistrict    Kind = "district"
	KindSubdistrict Kind = "subdistrict"
	KindVillage     Kind = "village"
)

// Kinds lists every dataset in search order
var Kinds = []Kind{KindDistrict, KindSubdistrict, KindVillage}

// FileName returns the dataset file name for the kind
func (k Kind) FileName() string {
	return string(k) + "s.json"
}

// ErrNotFound is returned when a lookup matches no record
var ErrNotFound = errors.New("record not found")

// ErrUnknownKind is returned for a kind outside Kinds
var ErrUnknownKind = errors.New("unknown dataset")

// Record is a single dataset entry. Fields are kept as decoded, with numbers
// as json.Number so they are written back exactly as read.
type Record map[string]interface{}

// Dataset is the envelope document stored in each data file
type Dataset struct {
	Status  string   `json:"status"`
	Data    []Record `json:"data"`
	Message string   `json:"message"`
}

// Cache stores encoded search results
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Metrics receives catalog observations
type Metrics interface {
	RecordDatasetRead(kind string, ok bool, duration time.Duration)
	RecordSearch(results int)
	RecordCacheLookup(hit bool)
}

// Catalog serves the regional datasets stored in a directory
type Catalog struct {
	dir      string
	cache    Cache
	cacheTTL time.Duration
	metrics  Metrics
	logger   *zap.Logger
}

// Option configures a Catalog
type Option func(*Catalog)

// WithCache enables search result caching
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Catalog) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithMetrics attaches a metrics sink
func WithMetrics(m Metrics) Option {
	return func(c *Catalog) {
		c.metrics = m
	}
}

// New creates a catalog reading datasets from dir
func New(dir string, logger *zap.Logger, opts ...Option) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{
		dir:     dir,
		metrics: nopMetrics{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Raw returns the dataset file contents unchanged. The contents must be valid JSON.
func (c *Catalog) Raw(ctx context.Context, kind Kind) ([]byte, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := os.ReadFile(filepath.Join(c.dir, kind.FileName()))
	if err == nil && !json.Valid(data) {
		err = fmt.Errorf("%s is not valid JSON", kind.FileName())
	}
	c.metrics.RecordDatasetRead(string(kind), err == nil, time.Since(start))
	if err != nil {
		c.logger.Warn("failed to read dataset",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read %s dataset: %w", kind, err)
	}

	return data, nil
}

// Load reads and decodes a dataset
func (c *Catalog) Load(ctx context.Context, kind Kind) (*Dataset, error) {
	data, err := c.Raw(ctx, kind)
	if err != nil {
		return nil, err
	}

	var ds Dataset
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode %s dataset: %w", kind, err)
	}

	return &ds, nil
}

// District returns the district whose id matches. Ids compare by their
// textual form, so "3" matches both 3 and "3".
func (c *Catalog) District(ctx context.Context, id string) (Record, error) {
	ds, err := c.Load(ctx, KindDistrict)
	if err != nil {
		return nil, err
	}

	for _, rec := range ds.Data {
		if v, ok := rec["id"]; ok && textOf(v) == id {
			return rec, nil
		}
	}

	return nil, fmt.Errorf("district %s: %w", id, ErrNotFound)
}

func (k Kind) valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// textOf renders a decoded JSON scalar the way it appeared in the file
func textOf(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordDatasetRead(string, bool, time.Duration) {}
func (nopMetrics) RecordSearch(int)                              {}
func (nopMetrics) RecordCacheLookup(bool)                        {}
