package catalog

import (
	"context"
	"encoding/json"
	"math"
)

// Stats summarizes the datasets
type Stats struct {
	Districts       int   `json:"districts"`
	Subdistricts    int   `json:"subdistricts"`
	Villages        int   `json:"villages"`
	TotalPopulation int64 `json:"totalPopulation"`
}

// Count returns the record count for a dataset
func (s *Stats) Count(kind Kind) int {
	switch kind {
	case KindDistrict:
		return s.Districts
	case KindSubdistrict:
		return s.Subdistricts
	case KindVillage:
		return s.Villages
	}
	return 0
}

// Stats counts the records of every dataset and sums village population.
// Villages without a numeric population, or with one too large to sum,
// count as zero.
func (c *Catalog) Stats(ctx context.Context) (*Stats, error) {
	counts := make(map[Kind]int, len(Kinds))
	var population int64

	for _, kind := range Kinds {
		ds, err := c.Load(ctx, kind)
		if err != nil {
			return nil, err
		}
		counts[kind] = len(ds.Data)

		if kind != KindVillage {
			continue
		}
		for _, rec := range ds.Data {
			population += populationOf(rec)
		}
	}

	return &Stats{
		Districts:       counts[KindDistrict],
		Subdistricts:    counts[KindSubdistrict],
		Villages:        counts[KindVillage],
		TotalPopulation: population,
	}, nil
}

func populationOf(rec Record) int64 {
	n, ok := rec["population"].(json.Number)
	if !ok {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	// Values outside the int64 range are skipped
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}
