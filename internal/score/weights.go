package score

import (
	"fmt"
	"sort"

	"github.com/peterkuimelis/cardpower/internal/signal"
)

// Weight keys that are not signal categories.
const (
	ActionCost      = "action_cost"
	ResourceCost    = "resource_cost"
	HighCostPremium = "high_cost_premium"
)

// HighCostThreshold is the cost above which the high-cost premium applies.
const HighCostThreshold = 6

// Weights is the per-unit value of every signal plus the fixed cost terms.
// A table is read-only while scoring.
type Weights map[string]float64

// DefaultWeights returns the hand-tuned model.
func DefaultWeights() Weights {
	return Weights{
		ActionCost:                       -2.0,
		ResourceCost:                     -1.0,
		string(signal.Wall):              0.75,
		string(signal.Tower):             0.85,
		string(signal.Damage):            0.65,
		string(signal.TowerDamage):       0.90,
		string(signal.ProductionOwn):     3.0,
		string(signal.ProductionEnemy):   -3.5,
		string(signal.ProductionEnemyDe): 3.5,
		string(signal.ResourceGain):      0.9,
		string(signal.ResourceLose):      -0.9,
		string(signal.ResourceEnemyLose): 0.5,
		string(signal.PlayAgain):         2.0,
		string(signal.DrawDiscard):       0.5,
		HighCostPremium:                  0.08,
	}
}

// required keys are read directly by the scorer.
var required = []string{ActionCost, ResourceCost, string(signal.TowerDamage), HighCostPremium}

// IsWeightKey reports whether key may appear in a weight table.
// tower_damage_self is priced with the tower_damage weight and has no key of its own.
func IsWeightKey(key string) bool {
	switch key {
	case ActionCost, ResourceCost, HighCostPremium:
		return true
	case string(signal.TowerDamageSelf):
		return false
	}
	return signal.IsCategory(key)
}

// Validate checks that every key is known and the keys the scorer reads
// directly are present.
func (w Weights) Validate() error {
	for _, k := range w.Keys() {
		if !IsWeightKey(k) {
			return fmt.Errorf("unknown weight %q", k)
		}
	}
	for _, k := range required {
		if _, ok := w[k]; !ok {
			return fmt.Errorf("missing weight %q", k)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Merge returns a copy of w with overrides applied on top.
func (w Weights) Merge(overrides Weights) Weights {
	out := w.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Keys returns the weight keys sorted alphabetically.
func (w Weights) Keys() []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
