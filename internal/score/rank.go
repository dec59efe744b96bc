package score

import "sort"

// Thresholds used to label a net value.
const (
	OvertunedAbove = 0.0
	BalancedAbove  = -3.0
	StrategicBelow = -5.0
)

// Label classifies a net value.
func Label(net float64) string {
	switch {
	case net > OvertunedAbove:
		return ">>> OVERTUNED <<<"
	case net > BalancedAbove:
		return "balanced"
	default:
		return "strategic/niche"
	}
}

// RankByNet returns the cards sorted by net value, highest first. Ties keep
// catalog order.
func RankByNet(cards []ScoredCard) []ScoredCard {
	out := append([]ScoredCard(nil), cards...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetValue > out[j].NetValue
	})
	return out
}

// FilterColor returns the cards of one color, keeping their order.
func FilterColor(cards []ScoredCard, color string) []ScoredCard {
	var out []ScoredCard
	for _, c := range cards {
		if c.Color == color {
			out = append(out, c)
		}
	}
	return out
}

// Overtuned returns the cards with a positive net value, keeping their order.
func Overtuned(cards []ScoredCard) []ScoredCard {
	var out []ScoredCard
	for _, c := range cards {
		if c.NetValue > OvertunedAbove {
			out = append(out, c)
		}
	}
	return out
}

// Strategic returns the cards below the strategic threshold, lowest first.
func Strategic(cards []ScoredCard) []ScoredCard {
	var out []ScoredCard
	for _, c := range cards {
		if c.NetValue < StrategicBelow {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetValue < out[j].NetValue
	})
	return out
}

// Ratio is a card's net value per point of cost.
type Ratio struct {
	ScoredCard
	Ratio float64 `json:"ratio"`
}

// Efficiency ranks cards by net value per cost, best first. Zero-cost cards
// are left out.
func Efficiency(cards []ScoredCard) []Ratio {
	var out []Ratio
	for _, c := range cards {
		if c.Cost <= 0 {
			continue
		}
		out = append(out, Ratio{ScoredCard: c, Ratio: c.NetValue / float64(c.Cost)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ratio > out[j].Ratio
	})
	return out
}
