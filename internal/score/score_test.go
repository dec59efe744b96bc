package score

import (
	"encoding/json"
	"testing"

	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/signal"
)

func card(id int, name string, cost int, effect string) catalog.Card {
	return catalog.Card{ID: id, Name: name, Color: catalog.ColorRed, Cost: cost, Effect: effect}
}

func TestScoreTwoCardCatalog(t *testing.T) {
	cards := []catalog.Card{
		{ID: 1, Name: "A", Cost: 2, Effect: "+1 Wall +1 Tower", Color: "Red"},
		{ID: 2, Name: "B", Cost: 8, Effect: "5 damage to enemy tower", Color: "Blue"},
	}
	scored := New(DefaultWeights()).ScoreAll(cards)

	if got := scored[0].NetValue; got != -2.4 {
		t.Errorf("A net = %v, want -2.4", got)
	}
	if got := scored[1].NetValue; got != -5.34 {
		t.Errorf("B net = %v, want -5.34", got)
	}
	if got, _ := scored[1].Breakdown.Get(HighCostPremium); got != 0.16 {
		t.Errorf("B premium = %v, want 0.16", got)
	}
	if got, _ := scored[1].Breakdown.Get(string(signal.TowerDamage)); got != 4.5 {
		t.Errorf("B tower_damage = %v, want 4.5", got)
	}

	ranked := RankByNet(scored)
	if ranked[0].Name != "A" || ranked[1].Name != "B" {
		t.Errorf("ranking = %s, %s; want A, B", ranked[0].Name, ranked[1].Name)
	}
}

func TestScoreIsPure(t *testing.T) {
	c := card(1, "X", 7, "All players lose 3 gems. 4 damage. You take 2 damage. Play again")
	w := DefaultWeights()
	a, b := Score(c, w), Score(c, w)
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Errorf("results differ:\n%s\n%s", ja, jb)
	}
}

func TestScoreZeroOutputWeights(t *testing.T) {
	w := Weights{ActionCost: -2, ResourceCost: -1, string(signal.TowerDamage): 0, HighCostPremium: 0}
	for _, s := range signal.Categories() {
		if IsWeightKey(string(s)) {
			w[string(s)] = 0
		}
	}
	r := Score(card(1, "X", 9, "+5 wall, 10 damage, you take 4 damage, +2 quarry"), w)
	if r.NetValue != r.InputPts {
		t.Errorf("net = %v, input = %v; want equal", r.NetValue, r.InputPts)
	}
	if r.OutputPts != 0 {
		t.Errorf("output = %v, want 0", r.OutputPts)
	}
}

func TestScoreCostMonotonic(t *testing.T) {
	w := DefaultWeights()
	prev := Score(card(1, "X", 0, "+3 wall"), w)
	for cost := 1; cost <= 12; cost++ {
		r := Score(card(1, "X", cost, "+3 wall"), w)
		if diff := Round2(r.InputPts - prev.InputPts); diff != w[ResourceCost] {
			t.Errorf("cost %d: input delta = %v, want %v", cost, diff, w[ResourceCost])
		}
		prev = r
	}
}

func TestScoreHighCostPremium(t *testing.T) {
	w := DefaultWeights()

	r := Score(card(1, "X", 6, ""), w)
	if _, ok := r.Breakdown.Get(HighCostPremium); ok {
		t.Error("cost 6 should not get a premium")
	}

	r = Score(card(1, "X", 7, ""), w)
	got, ok := r.Breakdown.Get(HighCostPremium)
	if !ok || got != w[HighCostPremium] {
		t.Errorf("cost 7 premium = %v (present %v), want %v", got, ok, w[HighCostPremium])
	}

	w[HighCostPremium] = 0
	r = Score(card(1, "X", 9, ""), w)
	if got, ok := r.Breakdown.Get(HighCostPremium); !ok || got != 0 {
		t.Errorf("zero premium should still be recorded, got %v (present %v)", got, ok)
	}
}

func TestScoreSelfTowerDamage(t *testing.T) {
	w := DefaultWeights()
	r := Score(card(1, "X", 1, "You take 3 damage"), w)

	if _, ok := r.Signals.Get(signal.Damage); ok {
		t.Error("self damage must not count as damage")
	}
	got, ok := r.Breakdown.Get(SelfTowerDamageKey)
	if !ok || got != -5.4 {
		t.Errorf("self tower damage = %v (present %v), want -5.4", got, ok)
	}
	if _, ok := r.Breakdown.Get(string(signal.TowerDamageSelf)); ok {
		t.Error("tower_damage_self has no weight and must only appear under the adjustment key")
	}
	// -2 -1 -5.4
	if r.NetValue != -8.4 {
		t.Errorf("net = %v, want -8.4", r.NetValue)
	}
}

func TestSelfTowerDamageExportKey(t *testing.T) {
	r := Score(card(1, "X", 1, "You take 3 damage"), DefaultWeights())
	data, err := json.Marshal(r.Breakdown)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]float64
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if got, ok := decoded["tower_damage_self (tower取负)"]; !ok || got != -5.4 {
		t.Errorf("breakdown json = %s, want tower_damage_self (tower取负) = -5.4", data)
	}
}

func TestScoreBreakdownOrder(t *testing.T) {
	r := Score(card(1, "X", 8, "7 damage to all towers, +2 wall"), DefaultWeights())
	var labels []string
	r.Breakdown.Each(func(label string, _ float64) {
		labels = append(labels, label)
	})
	want := []string{"wall", "tower_damage", "damage", HighCostPremium, SelfTowerDamageKey}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestScoreEmptyEffect(t *testing.T) {
	r := Score(catalog.Card{ID: 1, Name: "Blank"}, DefaultWeights())
	if r.Signals.Len() != 0 || r.Breakdown.Len() != 0 {
		t.Errorf("expected no signals, got %s", r.Signals)
	}
	if r.NetValue != -2 {
		t.Errorf("net = %v, want -2", r.NetValue)
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		2.675:              2.67,
		-5.340000000000001: -5.34,
		1.005:              1,
		0.125:              0.12,
		-2.4:               -2.4,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}
