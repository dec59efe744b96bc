// Package score prices extracted card signals with a linear weight table.
package score

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/signal"
)

// SelfTowerDamageKey labels the self tower damage adjustment in a breakdown.
// Earlier result files use this exact key.
const SelfTowerDamageKey = "tower_damage_self (tower取负)"

// Result is the score of one card under one weight table.
type Result struct {
	Signals   signal.Map `json:"signals"`
	InputPts  float64    `json:"input_pts"`
	OutputPts float64    `json:"output_pts"`
	NetValue  float64    `json:"net_value"`
	Breakdown Breakdown  `json:"breakdown"`
}

// ScoredCard pairs a card with its score.
type ScoredCard struct {
	catalog.Card
	Result
}

// Breakdown maps a contribution label to its points, in the order the scorer
// recorded them.
type Breakdown struct {
	m *orderedmap.OrderedMap[string, float64]
}

func newBreakdown() Breakdown {
	return Breakdown{m: orderedmap.New[string, float64]()}
}

// Get returns the contribution recorded under label.
func (b Breakdown) Get(label string) (float64, bool) {
	if b.m == nil {
		return 0, false
	}
	return b.m.Get(label)
}

// Len returns the number of recorded contributions.
func (b Breakdown) Len() int {
	if b.m == nil {
		return 0
	}
	return b.m.Len()
}

// Each calls fn for every contribution in recording order.
func (b Breakdown) Each(fn func(label string, pts float64)) {
	if b.m == nil {
		return
	}
	for pair := b.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON encodes the breakdown as an ordered JSON object.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	if b.m == nil {
		return []byte("{}"), nil
	}
	return b.m.MarshalJSON()
}

// Scorer scores cards against a fixed weight table.
type Scorer struct {
	w Weights
}

// New returns a scorer bound to a copy of w.
func New(w Weights) *Scorer {
	return &Scorer{w: w.Clone()}
}

// Weights returns a copy of the scorer's weight table.
func (s *Scorer) Weights() Weights {
	return s.w.Clone()
}

// Score scores one card.
func (s *Scorer) Score(c catalog.Card) Result {
	return Score(c, s.w)
}

// ScoreAll scores every card, preserving catalog order.
func (s *Scorer) ScoreAll(cards []catalog.Card) []ScoredCard {
	out := make([]ScoredCard, len(cards))
	for i, c := range cards {
		out[i] = ScoredCard{Card: c, Result: s.Score(c)}
	}
	return out
}

// Score computes input points (play and resource cost), output points (the
// weighted signals plus the high-cost premium and the self tower damage
// adjustment) and their sum.
func Score(c catalog.Card, w Weights) Result {
	signals := signal.Extract(c.Effect)
	cost := float64(c.Cost)

	input := w[ActionCost] + cost*w[ResourceCost]

	var output float64
	breakdown := newBreakdown()
	signals.Each(func(cat signal.Category, v float64) {
		weight, ok := w[string(cat)]
		if !ok {
			return
		}
		pts := v * weight
		if pts != 0 {
			breakdown.m.Set(string(cat), Round2(pts))
		}
		output += pts
	})

	if c.Cost > HighCostThreshold {
		premium := float64(c.Cost-HighCostThreshold) * w[HighCostPremium]
		breakdown.m.Set(HighCostPremium, Round2(premium))
		output += premium
	}

	// Self tower damage is priced with the tower_damage weight.
	if v, ok := signals.Get(signal.TowerDamageSelf); ok {
		pts := v * w[string(signal.TowerDamage)]
		breakdown.m.Set(SelfTowerDamageKey, Round2(pts))
		output += pts
	}

	return Result{
		Signals:   signals,
		InputPts:  Round2(input),
		OutputPts: Round2(output),
		NetValue:  Round2(input + output),
		Breakdown: breakdown,
	}
}

// Round2 rounds x to two decimals the way its decimal rendering does, so
// 2.675 (stored as 2.67499...) becomes 2.67.
func Round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}
