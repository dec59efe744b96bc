package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/peterkuimelis/cardpower/internal/score"
)

// Record is one row of an exported ranking.
type Record struct {
	Rank      int             `json:"rank"`
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	NameZh    string          `json:"name_zh"`
	Color     string          `json:"color"`
	Cost      int             `json:"cost"`
	Effect    string          `json:"effect"`
	NetValue  float64         `json:"net_value"`
	InputPts  float64         `json:"input_pts"`
	OutputPts float64         `json:"output_pts"`
	Breakdown score.Breakdown `json:"breakdown"`
}

// Records numbers ranked cards from 1.
func Records(ranked []score.ScoredCard) []Record {
	out := make([]Record, len(ranked))
	for i, c := range ranked {
		out[i] = Record{
			Rank:      i + 1,
			ID:        c.ID,
			Name:      c.Name,
			NameZh:    c.NameZh,
			Color:     c.Color,
			Cost:      c.Cost,
			Effect:    c.Effect,
			NetValue:  c.NetValue,
			InputPts:  c.InputPts,
			OutputPts: c.OutputPts,
			Breakdown: c.Breakdown,
		}
	}
	return out
}

// WriteJSON writes records as an indented JSON array with non-ASCII text
// left unescaped.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if records == nil {
		records = []Record{}
	}
	return enc.Encode(records)
}

// ExportJSON writes the ranking to path.
func ExportJSON(path string, ranked []score.ScoredCard) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, Records(ranked)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
