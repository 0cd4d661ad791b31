// Package sink persists merged scrape results: a pretty-printed JSON dump
// of the raw result map and a CSV expansion of charger availability rows.
// Filenames carry the run keyword (or charger type tag) plus a timestamp,
// so repeated runs never overwrite each other.
package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gridscan/chargescan/pkg/chargers"
)

// Filename timestamp layouts. The CSV layout embeds spaces around the dash;
// both are inherited output contracts and must not change.
const (
	jsonStamp = "20060102-150405"
	csvStamp  = "20060102 - 150405"
)

// csvHeader is the tabular contract: one row per identifier and charger type.
var csvHeader = []string{"Id", "Charger_type", "Available", "Total", "timestamp"}

// WriteJSON dumps the merged result map, keyed by identifier, as
// pretty-printed UTF-8 JSON named scrape_results_<keyword>_<timestamp>.json
// under dir. It returns the path written.
func WriteJSON(dir, keyword string, results map[string]json.RawMessage) (string, error) {
	name := fmt.Sprintf("scrape_results_%s_%s.json", keyword, time.Now().Format(jsonStamp))
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write json dump: %w", err)
	}

	log.Info().
		Str("component", "sink").
		Str("keyword", keyword).
		Str("path", path).
		Int("identifiers", len(results)).
		Msg("dumped results as json")
	return path, nil
}

// WriteCSV writes availability rows as Datascrapes<chargerType><timestamp>.csv
// under dir and returns the path. chargerType is a filename tag, not a
// filter; every row given is written.
func WriteCSV(dir, chargerType string, rows []chargers.Row) (string, error) {
	name := fmt.Sprintf("Datascrapes%s%s.csv", chargerType, time.Now().Format(csvStamp))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.ID, row.ChargerType, row.Available, row.Total, row.Timestamp}
		if err := w.Write(record); err != nil {
			f.Close()
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close csv: %w", err)
	}

	log.Info().
		Str("component", "sink").
		Str("path", path).
		Int("rows", len(rows)).
		Msg("wrote availability csv")
	return path, nil
}
