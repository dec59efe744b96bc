package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/cardpower/internal/analyzer"
	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/config"
	"github.com/peterkuimelis/cardpower/internal/log"
	"github.com/peterkuimelis/cardpower/internal/score"
)

// Session holds the weights and the scored catalog served by the tools.
// The catalog is loaded on first use and kept until Reset.
type Session struct {
	mu          sync.RWMutex
	cardsFile   string
	weightsFile string
	scorer      *score.Scorer
	run         *analyzer.Run
	events      *log.MemoryLogger
}

// NewSession returns a session reading the given files. An empty weights
// path means the built-in table.
func NewSession(cardsFile, weightsFile string) *Session {
	return &Session{cardsFile: cardsFile, weightsFile: weightsFile}
}

// Scorer returns the session's scorer, loading the weights if needed.
func (s *Session) Scorer() (*score.Scorer, error) {
	s.mu.RLock()
	sc := s.scorer
	s.mu.RUnlock()
	if sc != nil {
		return sc, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scorer == nil {
		w, err := config.LoadWeights(s.weightsFile)
		if err != nil {
			return nil, err
		}
		s.scorer = score.New(w)
	}
	return s.scorer, nil
}

// Run returns the scored catalog, loading and scoring it if needed.
func (s *Session) Run() (*analyzer.Run, error) {
	s.mu.RLock()
	run := s.run
	s.mu.RUnlock()
	if run != nil {
		return run, nil
	}

	sc, err := s.Scorer()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != nil {
		return s.run, nil
	}
	cards, err := catalog.Load(s.cardsFile)
	if err != nil {
		return nil, err
	}
	s.events = log.NewMemoryLogger()
	s.events.Log(log.NewCatalogLoadedEvent(s.cardsFile, len(cards)))
	s.run = analyzer.Score(cards, sc.Weights(), s.events)
	s.run.CardsFile = s.cardsFile
	return s.run, nil
}

// Reset drops the cached weights and catalog so the next call rereads them.
func (s *Session) Reset() {
	s.mu.Lock()
	s.scorer = nil
	s.run = nil
	s.events = nil
	s.mu.Unlock()
}

// Events returns the run events of the current catalog load.
func (s *Session) Events() []log.RunEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.events == nil {
		return nil
	}
	return s.events.Events()
}

// EventView is a run event as presented in tool results.
type EventView struct {
	Seq     int    `json:"seq"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView is a scored card as presented in tool results.
type CardView struct {
	Rank int `json:"rank,omitempty"`
	score.ScoredCard
	Label string `json:"label"`
}

func viewOf(rank int, c score.ScoredCard) CardView {
	return CardView{Rank: rank, ScoredCard: c, Label: score.Label(c.NetValue)}
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
