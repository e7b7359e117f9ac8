package ingest

import (
	"encoding/json"
	"strings"
)

// NameRecord is one element of a serialized attribute-record list, e.g.
// `[{"name": "Action"}, {"name": "Thriller"}]`.
type NameRecord struct {
	Name string `json:"name"`
}

// CrewRecord is one element of the serialized crew list.
type CrewRecord struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// ParseNameList decodes a serialized list of named attribute records. An
// empty cell decodes to an empty list; anything unparseable is an error,
// since downstream queries assume every movie has consistent edges.
func ParseNameList(raw string) ([]NameRecord, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []NameRecord
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseCrewList decodes the serialized crew list.
func ParseCrewList(raw string) ([]CrewRecord, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []CrewRecord
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
