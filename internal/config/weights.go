package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/cardpower/internal/score"
)

// WeightsFile represents the weights YAML layout.
type WeightsFile struct {
	Weights map[string]float64 `yaml:"weights"`
}

// LoadWeights reads a weights file and merges it over the default table.
// An empty path returns the defaults.
func LoadWeights(path string) (score.Weights, error) {
	if path == "" {
		return score.DefaultWeights(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWeights(data)
}

// ParseWeights parses weights YAML and merges it over the default table.
func ParseWeights(data []byte) (score.Weights, error) {
	var wf WeightsFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse weights YAML: %w", err)
	}
	w := score.DefaultWeights().Merge(score.Weights(wf.Weights))
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	return w, nil
}

// WriteWeights writes w in the weights file layout.
func WriteWeights(out io.Writer, w score.Weights) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(WeightsFile{Weights: w}); err != nil {
		return err
	}
	return enc.Close()
}
