// Package balance summarises a scored catalog for calibration work.
package balance

import (
	"errors"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/score"
)

// ErrInsufficientData is returned when there are too few cards to summarise.
var ErrInsufficientData = errors.New("balance: not enough cards")

// Summary describes the distribution of net values in one run.
type Summary struct {
	Count     int            `json:"count"`
	Mean      float64        `json:"mean"`
	Median    float64        `json:"median"`
	StdDev    float64        `json:"stddev"`
	Min       float64        `json:"min"`
	Max       float64        `json:"max"`
	Q25       float64        `json:"q25"`
	Q75       float64        `json:"q75"`
	Overtuned int            `json:"overtuned"`
	Strategic int            `json:"strategic"`
	ByColor   []ColorSummary `json:"by_color"`
}

// ColorSummary is the net value mean of one deck color.
type ColorSummary struct {
	Color string  `json:"color"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// Summarize computes distribution statistics over the cards' net values.
func Summarize(cards []score.ScoredCard) (Summary, error) {
	if len(cards) == 0 {
		return Summary{}, ErrInsufficientData
	}
	nets := netValues(cards)

	s := Summary{
		Count:     len(cards),
		Overtuned: len(score.Overtuned(cards)),
		Strategic: len(score.Strategic(cards)),
	}
	var err error
	if s.Mean, err = stats.Mean(nets); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(nets); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(nets); err != nil {
		return Summary{}, err
	}
	if s.Min, err = stats.Min(nets); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(nets); err != nil {
		return Summary{}, err
	}
	if len(nets) == 1 {
		s.Q25, s.Q75 = nets[0], nets[0]
	} else {
		q, err := stats.Quartile(nets)
		if err != nil {
			return Summary{}, err
		}
		s.Q25, s.Q75 = q.Q1, q.Q3
	}

	for _, color := range colorsOf(cards) {
		group := score.FilterColor(cards, color)
		mean, err := stats.Mean(netValues(group))
		if err != nil {
			return Summary{}, err
		}
		s.ByColor = append(s.ByColor, ColorSummary{Color: color, Count: len(group), Mean: score.Round2(mean)})
	}

	s.Mean = score.Round2(s.Mean)
	s.Median = score.Round2(s.Median)
	s.StdDev = score.Round2(s.StdDev)
	s.Q25 = score.Round2(s.Q25)
	s.Q75 = score.Round2(s.Q75)
	return s, nil
}

// Fit is a least-squares line net = Alpha + Beta*cost over the catalog.
type Fit struct {
	Alpha    float64   `json:"alpha"`
	Beta     float64   `json:"beta"`
	R        float64   `json:"r"`
	Outliers []Outlier `json:"outliers"`
}

// Outlier is a card whose net value is far from the cost line.
type Outlier struct {
	Name     string  `json:"name"`
	Cost     int     `json:"cost"`
	NetValue float64 `json:"net_value"`
	Expected float64 `json:"expected"`
	Residual float64 `json:"residual"`
}

// OutlierSigma is how many residual standard deviations make an outlier.
const OutlierSigma = 2.0

// Below this the fit is exact and rounding noise is not an outlier.
const minResidualSD = 1e-9

// FitCost regresses net value on cost and reports the cards whose residual
// exceeds OutlierSigma standard deviations, largest first.
func FitCost(cards []score.ScoredCard) (Fit, error) {
	if len(cards) < 2 {
		return Fit{}, ErrInsufficientData
	}
	costs := make([]float64, len(cards))
	for i, c := range cards {
		costs[i] = float64(c.Cost)
	}
	if stat.Variance(costs, nil) == 0 {
		return Fit{}, ErrInsufficientData
	}
	nets := netValues(cards)

	alpha, beta := stat.LinearRegression(costs, nets, nil, false)
	r := stat.Correlation(costs, nets, nil)
	if math.IsNaN(r) {
		r = 0
	}

	residuals := make([]float64, len(cards))
	for i := range cards {
		residuals[i] = nets[i] - (alpha + beta*costs[i])
	}
	sd := stat.StdDev(residuals, nil)

	fit := Fit{Alpha: score.Round2(alpha), Beta: score.Round2(beta), R: score.Round2(r), Outliers: []Outlier{}}
	for i, c := range cards {
		if sd < minResidualSD || math.Abs(residuals[i]) <= OutlierSigma*sd {
			continue
		}
		fit.Outliers = append(fit.Outliers, Outlier{
			Name:     c.Name,
			Cost:     c.Cost,
			NetValue: c.NetValue,
			Expected: score.Round2(alpha + beta*costs[i]),
			Residual: score.Round2(residuals[i]),
		})
	}
	sort.SliceStable(fit.Outliers, func(i, j int) bool {
		return math.Abs(fit.Outliers[i].Residual) > math.Abs(fit.Outliers[j].Residual)
	})
	return fit, nil
}

func netValues(cards []score.ScoredCard) []float64 {
	out := make([]float64, len(cards))
	for i, c := range cards {
		out[i] = c.NetValue
	}
	return out
}

// colorsOf returns the standard colors present in cards, then any others in
// first-seen order.
func colorsOf(cards []score.ScoredCard) []string {
	seen := make(map[string]bool)
	for _, c := range cards {
		seen[c.Color] = true
	}
	var out []string
	for _, color := range catalog.Colors {
		if seen[color] {
			out = append(out, color)
			delete(seen, color)
		}
	}
	for _, c := range cards {
		if seen[c.Color] {
			out = append(out, c.Color)
			delete(seen, c.Color)
		}
	}
	return out
}
