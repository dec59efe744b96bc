package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/score"
)

func scored(name, color string, cost int, net float64) score.ScoredCard {
	return score.ScoredCard{
		Card:   catalog.Card{Name: name, Color: color, Cost: cost},
		Result: score.Result{NetValue: net},
	}
}

func TestSummarize(t *testing.T) {
	cards := []score.ScoredCard{
		scored("A", catalog.ColorRed, 1, 1),
		scored("B", catalog.ColorBlue, 2, 2),
		scored("C", catalog.ColorRed, 3, 3),
		scored("D", catalog.ColorGreen, 4, -6),
	}
	s, err := Summarize(cards)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 0.0, s.Mean)
	assert.Equal(t, 1.5, s.Median)
	assert.Equal(t, -6.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.Equal(t, -2.5, s.Q25)
	assert.Equal(t, 2.5, s.Q75)
	assert.Equal(t, 3, s.Overtuned)
	assert.Equal(t, 1, s.Strategic)
	assert.Equal(t, 3.54, s.StdDev)

	require.Len(t, s.ByColor, 3)
	assert.Equal(t, ColorSummary{Color: catalog.ColorRed, Count: 2, Mean: 2}, s.ByColor[0])
	assert.Equal(t, catalog.ColorBlue, s.ByColor[1].Color)
	assert.Equal(t, catalog.ColorGreen, s.ByColor[2].Color)
}

func TestSummarizeSingleCard(t *testing.T) {
	s, err := Summarize([]score.ScoredCard{scored("Solo", "", 2, -2.4)})
	require.NoError(t, err)
	assert.Equal(t, -2.4, s.Q25)
	assert.Equal(t, -2.4, s.Q75)
	assert.Equal(t, 0.0, s.StdDev)
	require.Len(t, s.ByColor, 1)
	assert.Equal(t, "", s.ByColor[0].Color)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitCostExactLine(t *testing.T) {
	var cards []score.ScoredCard
	for cost := 0; cost <= 8; cost++ {
		cards = append(cards, scored("c", catalog.ColorRed, cost, float64(2*cost-10)))
	}
	fit, err := FitCost(cards)
	require.NoError(t, err)
	assert.Equal(t, -10.0, fit.Alpha)
	assert.Equal(t, 2.0, fit.Beta)
	assert.Equal(t, 1.0, fit.R)
	assert.Empty(t, fit.Outliers)
}

func TestFitCostFindsOutlier(t *testing.T) {
	var cards []score.ScoredCard
	for cost := 1; cost <= 10; cost++ {
		net := -float64(cost)
		name := "filler"
		if cost == 5 {
			net, name = 10, "Broken"
		}
		cards = append(cards, scored(name, catalog.ColorBlue, cost, net))
	}
	fit, err := FitCost(cards)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, fit.Beta, 0.2)
	require.Len(t, fit.Outliers, 1)
	assert.Equal(t, "Broken", fit.Outliers[0].Name)
	assert.Greater(t, fit.Outliers[0].Residual, 10.0)
}

func TestFitCostInsufficientData(t *testing.T) {
	_, err := FitCost([]score.ScoredCard{scored("A", "", 1, 0)})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = FitCost([]score.ScoredCard{scored("A", "", 3, 0), scored("B", "", 3, 1)})
	assert.ErrorIs(t, err, ErrInsufficientData)
}
