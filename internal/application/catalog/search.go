package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// searchFields lists the fields matched against the query, per dataset
var searchFields = map[Kind][]string{
	KindDistrict:    {"name", "capital"},
	KindSubdistrict: {"name"},
	KindVillage:     {"name"},
}

// Search returns every record whose name (or district capital) contains the
// query, ignoring case. Each result carries a "type" field naming its dataset
// unless the record already has one. Results keep dataset order, then file
// order. Datasets that cannot be read are skipped; Search fails only if none
// can be read.
func (c *Catalog) Search(ctx context.Context, query string) ([]Record, error) {
	term := strings.ToLower(query)
	key := "search:" + term

	if c.cache != nil {
		if results, ok := c.cachedSearch(ctx, key); ok {
			c.metrics.RecordSearch(len(results))
			return results, nil
		}
	}

	results := make([]Record, 0)
	var failed []error
	for _, kind := range Kinds {
		ds, err := c.Load(ctx, kind)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failed = append(failed, err)
			continue
		}

		for _, rec := range ds.Data {
			if matches(rec, searchFields[kind], term) {
				results = append(results, tagged(kind, rec))
			}
		}
	}

	if len(failed) == len(Kinds) {
		return nil, fmt.Errorf("no dataset could be searched: %w", failed[0])
	}

	if len(failed) > 0 {
		c.logger.Warn("search ran on partial data",
			zap.String("query", query),
			zap.Int("skipped_datasets", len(failed)))
	} else if c.cache != nil {
		c.storeSearch(ctx, key, results)
	}

	c.metrics.RecordSearch(len(results))
	return results, nil
}

func (c *Catalog) cachedSearch(ctx context.Context, key string) ([]Record, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("search cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	c.metrics.RecordCacheLookup(ok)
	if !ok {
		return nil, false
	}

	var results []Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&results); err != nil {
		c.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if results == nil {
		results = make([]Record, 0)
	}

	return results, true
}

func (c *Catalog) storeSearch(ctx context.Context, key string, results []Record) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("failed to encode search results", zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		c.logger.Warn("search cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func matches(rec Record, fields []string, term string) bool {
	for _, f := range fields {
		s, ok := rec[f].(string)
		if ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// tagged copies rec and adds the dataset type
func tagged(kind Kind, rec Record) Record {
	out := make(Record, len(rec)+1)
	out["type"] = string(kind)
	for k, v := range rec {
		out[k] = v
	}
	return out
}
