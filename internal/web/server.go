package web

import (
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/cardpower/internal/analyzer"
	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/config"
	"github.com/peterkuimelis/cardpower/internal/log"
	"github.com/peterkuimelis/cardpower/internal/score"
)

//go:embed static
var staticFiles embed.FS

// maxBodyBytes bounds POST /api/score bodies.
const maxBodyBytes = 64 << 10

// CardInfo is the JSON representation of a scored card for the /api endpoints.
type CardInfo struct {
	Rank int `json:"rank,omitempty"`
	score.ScoredCard
	Label string `json:"label"`
}

// ScoreRequest is the body of POST /api/score and of each websocket message.
type ScoreRequest struct {
	Effect string `json:"effect"`
	Cost   int    `json:"cost"`
}

// Server is the cardpower web UI server.
type Server struct {
	cardsFile   string
	weightsFile string

	mu     sync.RWMutex
	scorer *score.Scorer
	run    *analyzer.Run

	mux *http.ServeMux
}

// NewServer loads the catalog and weights and creates a web server.
func NewServer(cardsFile, weightsFile string) (*Server, error) {
	s := &Server{
		cardsFile:   cardsFile,
		weightsFile: weightsFile,
		mux:         http.NewServeMux(),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// Reload rereads the catalog and weights. On error the previous snapshot is kept.
func (s *Server) Reload() error {
	cfg := config.Default()
	cfg.CardsFile = s.cardsFile
	cfg.WeightsFile = s.weightsFile
	run, err := analyzer.Analyze(cfg, log.NewMemoryLogger())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.run = run
	s.scorer = score.New(run.Weights)
	s.mu.Unlock()
	slog.Info("catalog loaded", "cards", len(run.Scored), "file", s.cardsFile)
	return nil
}

func (s *Server) snapshot() (*analyzer.Run, *score.Scorer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.run, s.scorer
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/weights", s.handleWeights)
	s.mux.HandleFunc("GET /api/summary", s.handleSummary)
	s.mux.HandleFunc("POST /api/score", s.handleScore)
	s.mux.HandleFunc("POST /api/reload", s.handleReload)

	// Live scoring
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	run, _ := s.snapshot()
	cards := run.Ranked

	if color := r.URL.Query().Get("color"); color != "" {
		canonical := ""
		for _, c := range catalog.Colors {
			if strings.EqualFold(c, color) {
				canonical = c
			}
		}
		if canonical == "" {
			writeError(w, http.StatusBadRequest, "unknown color "+color)
			return
		}
		cards = score.FilterColor(cards, canonical)
	}

	switch r.URL.Query().Get("sort") {
	case "", "net":
		infos := make([]CardInfo, len(cards))
		for i, c := range cards {
			infos[i] = CardInfo{Rank: i + 1, ScoredCard: c, Label: score.Label(c.NetValue)}
		}
		writeJSON(w, http.StatusOK, infos)
	case "efficiency":
		ratios := score.Efficiency(cards)
		if ratios == nil {
			ratios = []score.Ratio{}
		}
		writeJSON(w, http.StatusOK, ratios)
	default:
		writeError(w, http.StatusBadRequest, "sort must be net or efficiency")
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	run, _ := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": run.Summary,
		"fit":     run.Fit,
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	info, err := s.scoreRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(); err != nil {
		slog.Warn("reload failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	run, _ := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]int{"cards": len(run.Scored)})
}

type requestError string

func (e requestError) Error() string { return string(e) }

func (s *Server) scoreRequest(req ScoreRequest) (CardInfo, error) {
	if strings.TrimSpace(req.Effect) == "" {
		return CardInfo{}, requestError("effect must not be empty")
	}
	if req.Cost < 0 {
		return CardInfo{}, requestError("cost must be >= 0")
	}
	_, scorer := s.snapshot()
	c := catalog.Card{Name: "(ad hoc)", Cost: req.Cost, Effect: req.Effect}
	res := scorer.Score(c)
	return CardInfo{ScoredCard: score.ScoredCard{Card: c, Result: res}, Label: score.Label(res.NetValue)}, nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		slog.Warn("websocket accept", "err", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	for {
		_, data, err := wsConn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				slog.Debug("websocket read", "err", err)
			}
			return
		}

		var reply any
		var req ScoreRequest
		if err := json.Unmarshal(data, &req); err != nil {
			reply = map[string]string{"type": "error", "error": "invalid JSON message"}
		} else if info, err := s.scoreRequest(req); err != nil {
			reply = map[string]string{"type": "error", "error": err.Error()}
		} else {
			reply = map[string]any{"type": "score", "result": info}
		}

		msg, _ := json.Marshal(reply)
		if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
			slog.Debug("websocket write", "err", err)
			return
		}
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
