// Package chargers decodes charging-station availability payloads and
// expands them into tabular rows.
//
// An availability payload maps charger types to a three-element tuple:
//
//	{"ac": [2, 4, "2024-05-01 12:00:00"], "dc": [1, 1, "2024-05-01 12:00:00"]}
//
// meaning "2 of 4 AC chargers free, measured at the given time".
package chargers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Status is one charger type's availability reading. It marshals to and
// from the wire tuple [available, total, timestamp].
type Status struct {
	Available int
	Total     int
	Timestamp string
}

// UnmarshalJSON decodes the [available, total, timestamp] tuple.
func (s *Status) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("availability tuple: %w", err)
	}
	if len(tuple) != 3 {
		return fmt.Errorf("availability tuple has %d elements, want 3", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &s.Available); err != nil {
		return fmt.Errorf("available: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &s.Total); err != nil {
		return fmt.Errorf("total: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &s.Timestamp); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	return nil
}

// MarshalJSON encodes the status back into the wire tuple.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Available, s.Total, s.Timestamp})
}

// Decode parses one identifier's payload into charger-type statuses.
func Decode(payload json.RawMessage) (map[string]Status, error) {
	var out map[string]Status
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode availability payload: %w", err)
	}
	return out, nil
}

// Row is one tabular record: one identifier and charger type. Fields are
// strings so rows for identifiers without a recorded outcome stay empty.
type Row struct {
	ID          string
	ChargerType string
	Available   string
	Total       string
	Timestamp   string
}

// Rows expands results into tabular records, one per identifier and
// charger type. Identifiers keep their input order; charger types within
// an identifier are sorted for deterministic output. An identifier absent
// from results yields exactly one row with only the ID column set.
func Rows(identifiers []string, results map[string]json.RawMessage) ([]Row, error) {
	rows := make([]Row, 0, len(identifiers))

	for _, id := range identifiers {
		payload, ok := results[id]
		if !ok {
			rows = append(rows, Row{ID: id})
			continue
		}

		statuses, err := Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("identifier %s: %w", id, err)
		}

		types := make([]string, 0, len(statuses))
		for ct := range statuses {
			types = append(types, ct)
		}
		sort.Strings(types)

		for _, ct := range types {
			st := statuses[ct]
			rows = append(rows, Row{
				ID:          id,
				ChargerType: ct,
				Available:   strconv.Itoa(st.Available),
				Total:       strconv.Itoa(st.Total),
				Timestamp:   st.Timestamp,
			})
		}
	}

	return rows, nil
}
