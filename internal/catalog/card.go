// Package catalog loads card records for scoring.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Color marks which resource pays for a card.
const (
	ColorRed   = "Red"
	ColorBlue  = "Blue"
	ColorGreen = "Green"
)

// Colors lists the deck colors in report order.
var Colors = []string{ColorRed, ColorBlue, ColorGreen}

// Card is one catalog record. Cards are never modified after loading.
type Card struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	NameZh string `json:"name_zh"`
	Color  string `json:"color"`
	Cost   int    `json:"cost"`
	Effect string `json:"effect"`
}

// ErrNotFound is returned when the catalog file does not exist.
var ErrNotFound = errors.New("cards file not found")

// RecordError reports a record without one of its identity fields.
type RecordError struct {
	Index int // 0-based position in the file
	Field string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("card #%d: missing required field %q", e.Index, e.Field)
}

// Find returns the first card whose English or Chinese name matches name,
// ignoring case.
func Find(cards []Card, name string) (Card, bool) {
	for _, c := range cards {
		if strings.EqualFold(c.Name, name) || (c.NameZh != "" && c.NameZh == name) {
			return c, true
		}
	}
	return Card{}, false
}
