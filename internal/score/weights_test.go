package score

import (
	"strings"
	"testing"

	"github.com/peterkuimelis/cardpower/internal/signal"
)

func TestDefaultWeightsValid(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	for _, c := range signal.Categories() {
		_, ok := DefaultWeights()[string(c)]
		if c == signal.TowerDamageSelf {
			if ok {
				t.Error("tower_damage_self must not carry its own weight")
			}
			continue
		}
		if !ok {
			t.Errorf("default weights missing %s", c)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		w    Weights
		msg  string
	}{
		{"unknown", DefaultWeights().Merge(Weights{"armor": 1}), `unknown weight "armor"`},
		{"self damage", DefaultWeights().Merge(Weights{"tower_damage_self": 1}), `unknown weight "tower_damage_self"`},
		{"missing", Weights{ResourceCost: -1, "tower_damage": 1, HighCostPremium: 0}, `missing weight "action_cost"`},
	}
	for _, tc := range cases {
		err := tc.w.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.msg) {
			t.Errorf("%s: err = %v, want %q", tc.name, err, tc.msg)
		}
	}
}

func TestMergeDoesNotMutate(t *testing.T) {
	base := DefaultWeights()
	merged := base.Merge(Weights{"play_again": 3})
	if merged["play_again"] != 3 {
		t.Errorf("merged play_again = %v, want 3", merged["play_again"])
	}
	if base["play_again"] != 2 {
		t.Errorf("base play_again changed to %v", base["play_again"])
	}
}

func TestScorerCopiesWeights(t *testing.T) {
	w := DefaultWeights()
	s := New(w)
	w[ActionCost] = -100
	if got := s.Weights()[ActionCost]; got != -2 {
		t.Errorf("scorer weights changed with caller map: %v", got)
	}
}
