// Package analyzer runs a full scoring pass over a card catalog.
package analyzer

import (
	"errors"
	"log/slog"

	"github.com/peterkuimelis/cardpower/internal/balance"
	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/config"
	"github.com/peterkuimelis/cardpower/internal/log"
	"github.com/peterkuimelis/cardpower/internal/score"
)

// Run is the outcome of one scoring pass.
type Run struct {
	CardsFile string
	Weights   score.Weights
	Scored    []score.ScoredCard // catalog order
	Ranked    []score.ScoredCard // net value, highest first
	Summary   balance.Summary
	Fit       *balance.Fit // nil when the catalog cannot be fitted
}

// Analyze loads the catalog and weights named by cfg and scores every card.
func Analyze(cfg config.Config, logger log.EventLogger) (*Run, error) {
	cards, err := catalog.Load(cfg.CardsFile)
	if err != nil {
		return nil, err
	}
	logger.Log(log.NewCatalogLoadedEvent(cfg.CardsFile, len(cards)))

	w, err := config.LoadWeights(cfg.WeightsFile)
	if err != nil {
		return nil, err
	}
	source := cfg.WeightsFile
	if source == "" {
		source = "built-in defaults"
	}
	logger.Log(log.NewWeightsLoadedEvent(source, len(w)))

	run := Score(cards, w, logger)
	run.CardsFile = cfg.CardsFile
	return run, nil
}

// Score scores an in-memory catalog. It never fails; summary statistics are
// left empty when the catalog is too small for them.
func Score(cards []catalog.Card, w score.Weights, logger log.EventLogger) *Run {
	scorer := score.New(w)
	run := &Run{Weights: scorer.Weights()}

	run.Scored = scorer.ScoreAll(cards)
	for _, c := range run.Scored {
		slog.Debug("scored card", "id", c.ID, "name", c.Name, "signals", c.Signals.String(), "net", c.NetValue)
		logger.Log(log.NewCardScoredEvent(c.Name, c.NetValue))
		if c.NetValue > score.OvertunedAbove {
			logger.Log(log.NewOvertunedEvent(c.Name, c.NetValue))
		}
	}

	run.Ranked = score.RankByNet(run.Scored)
	logger.Log(log.NewRankedEvent(len(run.Ranked)))

	summary, err := balance.Summarize(run.Scored)
	if err == nil {
		run.Summary = summary
		logger.Log(log.NewSummaryEvent(summary.Mean, summary.StdDev))
	}

	fit, err := balance.FitCost(run.Scored)
	switch {
	case err == nil:
		run.Fit = &fit
	case errors.Is(err, balance.ErrInsufficientData):
		slog.Debug("skipping cost fit", "cards", len(run.Scored))
	default:
		logger.Log(log.NewWarningEvent("cost fit failed: " + err.Error()))
	}
	return run
}
