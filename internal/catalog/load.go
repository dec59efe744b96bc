package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// File is the YAML catalog layout.
type File struct {
	Cards []map[string]any `yaml:"cards"`
}

// Load reads a catalog from a .json file (a top-level array, the game's
// cards.json) or a .yaml/.yml file with a top-level "cards" list.
func Load(path string) ([]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses a JSON array of card records.
func ParseJSON(data []byte) ([]Card, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse cards JSON: %w", err)
	}
	return decodeRecords(raw)
}

// ParseYAML parses a YAML document with a "cards" list.
func ParseYAML(data []byte) ([]Card, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cards YAML: %w", err)
	}
	return decodeRecords(f.Cards)
}

// decodeRecords converts loosely typed records into cards. id and name are
// required; every other field falls back to its zero value.
func decodeRecords(raw []map[string]any) ([]Card, error) {
	cards := make([]Card, 0, len(raw))
	for i, rec := range raw {
		for _, field := range []string{"id", "name"} {
			if v, ok := rec[field]; !ok || v == nil {
				return nil, &RecordError{Index: i, Field: field}
			}
		}

		var c Card
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &c,
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(rec); err != nil {
			return nil, fmt.Errorf("card #%d: %w", i, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}
