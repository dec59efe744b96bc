// Package report renders and exports scored card rankings.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterkuimelis/cardpower/internal/analyzer"
	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/score"
)

const (
	colorTopN      = 15
	efficiencyTopN = 10
)

var (
	rule     = strings.Repeat("=", 70)
	thinRule = strings.Repeat("-", 70)
)

// ColorMark returns the short tag printed beside a card of the given color.
func ColorMark(color string) string {
	switch color {
	case catalog.ColorRed:
		return "[R]"
	case catalog.ColorBlue:
		return "[B]"
	case catalog.ColorGreen:
		return "[G]"
	default:
		return "[ ]"
	}
}

// listMark is ColorMark without the placeholder for unknown colors.
func listMark(color string) string {
	if m := ColorMark(color); m != "[ ]" {
		return m
	}
	return ""
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n", rule, title, rule)
}

// PrintTable prints a ranking table. topN <= 0 prints every card.
func PrintTable(w io.Writer, cards []score.ScoredCard, title string, topN int) {
	if topN > 0 && len(cards) > topN {
		cards = cards[:topN]
	}
	heading(w, title)
	fmt.Fprintf(w, "%4s  %4s  %4s  %7s  %-24s  Chinese\n", "RNK", "CLR", "COST", "NET", "Card Name")
	fmt.Fprintln(w, thinRule)
	for i, c := range cards {
		fmt.Fprintf(w, "%4d. %s  %4dc  %+7.2f  %-24s  %s\n",
			i+1, ColorMark(c.Color), c.Cost, c.NetValue, c.Name, c.NameZh)
	}
}

// PrintDetail prints one card's signals, point totals and breakdown.
func PrintDetail(w io.Writer, c score.ScoredCard) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("-", 60))
	fmt.Fprintf(w, "  %s [%s] %s  (Cost: %d)\n", ColorMark(c.Color), c.Name, c.NameZh, c.Cost)
	fmt.Fprintf(w, "  Effect: %s\n", c.Effect)
	fmt.Fprintf(w, "  - Signals   : %s\n", c.Signals)
	fmt.Fprintf(w, "  - Input pts : %+.2f pt\n", c.InputPts)
	fmt.Fprintf(w, "  - Output pts: %+.2f pt\n", c.OutputPts)
	c.Breakdown.Each(func(label string, pts float64) {
		fmt.Fprintf(w, "      [%-30s]: %+.2f\n", label, pts)
	})
	fmt.Fprintf(w, "  = Net Value: %+.2f pt  [%s]\n", c.NetValue, score.Label(c.NetValue))
}

// PrintReport prints the full ranking and, with detail set, the per-color,
// overtuned, strategic, efficiency and balance sections.
func PrintReport(w io.Writer, run *analyzer.Run, detail bool) {
	PrintTable(w, run.Ranked, "[ALL] Full Card Power Ranking (by Net Value desc)", 0)
	if !detail {
		return
	}

	for _, color := range catalog.Colors {
		PrintTable(w, score.FilterColor(run.Ranked, color),
			fmt.Sprintf("%s %s Deck Power Ranking", ColorMark(color), color), colorTopN)
	}

	if over := score.Overtuned(run.Ranked); len(over) > 0 {
		heading(w, fmt.Sprintf("[OVERTUNED] Net Value > 0  (%d cards)", len(over)))
		for _, c := range over {
			PrintDetail(w, c)
		}
	}

	strategic := score.Strategic(run.Ranked)
	heading(w, fmt.Sprintf("[STRATEGIC] Net Value < -5  (%d cards - niche/tactical)", len(strategic)))
	fmt.Fprintln(w, "  These cards have net negative scores but serve unique tactical roles:")
	for _, c := range strategic {
		fmt.Fprintf(w, "    %s %-24s (%s)  net: %+.2f  -> %s\n", listMark(c.Color), c.Name, c.NameZh, c.NetValue, c.Effect)
	}

	printEfficiency(w, score.Efficiency(run.Ranked))
	printBalance(w, run)
}

func printEfficiency(w io.Writer, ratios []score.Ratio) {
	heading(w, "[EFFICIENCY] Net Value / Cost  (0-cost cards excluded)")

	top := ratios
	if len(top) > efficiencyTopN {
		top = top[:efficiencyTopN]
	}
	fmt.Fprintln(w, "\n  >>> Best Efficiency Top-10:")
	for _, r := range top {
		printRatio(w, r)
	}

	bottom := ratios
	if len(bottom) > efficiencyTopN {
		bottom = bottom[len(bottom)-efficiencyTopN:]
	}
	fmt.Fprintln(w, "\n  <<< Worst Efficiency Bottom-10:")
	for _, r := range bottom {
		printRatio(w, r)
	}
}

func printRatio(w io.Writer, r score.Ratio) {
	fmt.Fprintf(w, "    %s %-24s net:%+.2f / %dc = ratio:%+.2f\n", listMark(r.Color), r.Name, r.NetValue, r.Cost, r.Ratio)
}

func printBalance(w io.Writer, run *analyzer.Run) {
	if run.Summary.Count == 0 {
		return
	}
	s := run.Summary
	heading(w, "[BALANCE] Net Value Distribution")
	fmt.Fprintf(w, "  cards %d  mean %+.2f  median %+.2f  stddev %.2f\n", s.Count, s.Mean, s.Median, s.StdDev)
	fmt.Fprintf(w, "  min %+.2f  q25 %+.2f  q75 %+.2f  max %+.2f\n", s.Min, s.Q25, s.Q75, s.Max)
	for _, cs := range s.ByColor {
		fmt.Fprintf(w, "  %s %-6s %3d cards  mean %+.2f\n", ColorMark(cs.Color), cs.Color, cs.Count, cs.Mean)
	}
	if run.Fit == nil {
		return
	}
	fmt.Fprintf(w, "\n  cost curve: net = %+.2f %+.2f x cost  (r = %.2f)\n", run.Fit.Alpha, run.Fit.Beta, run.Fit.R)
	for _, o := range run.Fit.Outliers {
		fmt.Fprintf(w, "    off-curve %-24s cost %d  net %+.2f  expected %+.2f\n", o.Name, o.Cost, o.NetValue, o.Expected)
	}
}

// PrintCalibration prints the weight tuning hints.
func PrintCalibration(w io.Writer) {
	fmt.Fprintf(w, `
%s
  HOW TO CALIBRATE THE MODEL:
%s
  1. Review the rankings above.
     If a card you consider strong ranks too low, adjust its weights.
  2. Tunable parameters (write overrides to a YAML file, pass with --weights):
     - production_own / production_enemy_de  : value of building/destroying production
     - play_again                            : value of extra turn
     - damage / tower_damage                 : value of dealing damage
     Run "cardpower weights" to print the current table.
  3. Re-run the analysis after any change to see updated rankings.
`, rule, rule)
}
