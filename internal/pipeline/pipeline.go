package pipeline

import (
	log "github.com/sirupsen/logrus"

	"stockfeed/importer/internal/domain"
)

// Stats counts what happened to the feed rows during one run.
type Stats struct {
	RowsIn     int
	Duplicates int
	Skipped    int
	Filtered   int
	RowsOut    int
}

// Pipeline is the full transform from raw feed rows to the final record set:
// dedupe, normalize, filter, clamp, in that order.
type Pipeline struct {
	normalizer *Normalizer
}

func New(profile domain.SupplierProfile) *Pipeline {
	return &Pipeline{
		normalizer: NewNormalizer(profile),
	}
}

// Run processes the whole snapshot sequentially. Rows with unparseable
// mandatory numerics are dropped and counted, never fatal.
func (p *Pipeline) Run(raws []domain.RawRecord) ([]domain.Record, Stats) {
	stats := Stats{RowsIn: len(raws)}

	seen := make(map[string]struct{}, len(raws))
	records := make([]domain.Record, 0, len(raws))

	for _, raw := range raws {
		if _, dup := seen[raw.Artnr]; dup {
			stats.Duplicates++
			continue
		}
		seen[raw.Artnr] = struct{}{}

		record, err := p.normalizer.Normalize(raw)
		if err != nil {
			stats.Skipped++
			log.Debugf("Dropping row: %v", err)
			continue
		}

		if !Eligible(record) {
			stats.Filtered++
			continue
		}

		records = append(records, ClampQuantities(record))
	}

	stats.RowsOut = len(records)
	return records, stats
}
