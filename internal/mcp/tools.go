package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/cardpower/internal/balance"
	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/log"
	"github.com/peterkuimelis/cardpower/internal/score"
)

// activeSession is shared by every tool call of the stdio process.
var activeSession = NewSession("", "")

// cardsFile and weightsFile are set by main.
var (
	cardsFile   string
	weightsFile string
)

// SetCardsFile sets the path to the card catalog.
func SetCardsFile(path string) {
	cardsFile = path
	activeSession = NewSession(cardsFile, weightsFile)
}

// SetWeightsFile sets the path to the weights YAML file.
func SetWeightsFile(path string) {
	weightsFile = path
	activeSession = NewSession(cardsFile, weightsFile)
}

const defaultTopN = 10

// RegisterTools adds all scoring tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(scoreEffectTool(), handleScoreEffect)
	s.AddTool(rankCardsTool(), handleRankCards)
	s.AddTool(cardDetailTool(), handleCardDetail)
	s.AddTool(getWeightsTool(), handleGetWeights)
	s.AddTool(balanceSummaryTool(), handleBalanceSummary)
}

// --- Tool definitions ---

func scoreEffectTool() mcp.Tool {
	return mcp.NewTool("score_effect",
		mcp.WithDescription("Score an effect text that is not in the catalog. Returns the extracted signals, "+
			"input and output points, the per-signal breakdown and the net value."),
		mcp.WithString("effect", mcp.Required(), mcp.Description("English effect text, e.g. '+3 Wall. Play again'")),
		mcp.WithNumber("cost", mcp.Description("Resource cost of the card (default 0)")),
	)
}

func rankCardsTool() mcp.Tool {
	return mcp.NewTool("rank_cards",
		mcp.WithDescription("List catalog cards ranked by net value, highest first."),
		mcp.WithString("color", mcp.Description("Only cards of this deck color (Red, Blue or Green)")),
		mcp.WithNumber("top_n", mcp.Description("Number of cards to return (default 10, 0 for all)")),
	)
}

func cardDetailTool() mcp.Tool {
	return mcp.NewTool("card_detail",
		mcp.WithDescription("Show how one catalog card was scored, with its rank."),
		mcp.WithString("name", mcp.Required(), mcp.Description("English (case-insensitive) or Chinese card name")),
	)
}

func getWeightsTool() mcp.Tool {
	return mcp.NewTool("get_weights",
		mcp.WithDescription("Get the weight table used for scoring. Read-only."),
	)
}

func balanceSummaryTool() mcp.Tool {
	return mcp.NewTool("balance_summary",
		mcp.WithDescription("Get net value statistics for the catalog, per-color means and the cost curve fit "+
			"with its off-curve cards."),
	)
}

// --- Tool handlers ---

func handleScoreEffect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	effect := request.GetString("effect", "")
	if strings.TrimSpace(effect) == "" {
		return mcp.NewToolResultError("effect must not be empty"), nil
	}
	cost := request.GetInt("cost", 0)
	if cost < 0 {
		return mcp.NewToolResultErrorf("cost must be >= 0, got %d", cost), nil
	}

	sc, err := activeSession.Scorer()
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load weights: %v", err), nil
	}
	c := catalog.Card{Name: "(ad hoc)", Cost: cost, Effect: effect}
	return mcp.NewToolResultText(respondJSON(viewOf(0, score.ScoredCard{Card: c, Result: sc.Score(c)}))), nil
}

func handleRankCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, err := activeSession.Run()
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load catalog: %v", err), nil
	}

	topN := request.GetInt("top_n", defaultTopN)
	if topN < 0 {
		return mcp.NewToolResultErrorf("top_n must be >= 0, got %d", topN), nil
	}

	ranked := run.Ranked
	if color := request.GetString("color", ""); color != "" {
		canonical, ok := canonicalColor(color)
		if !ok {
			return mcp.NewToolResultErrorf("Unknown color %q. Must be one of %s.", color, strings.Join(catalog.Colors, ", ")), nil
		}
		ranked = score.FilterColor(ranked, canonical)
	}
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	views := make([]CardView, len(ranked))
	for i, c := range ranked {
		views[i] = viewOf(i+1, c)
	}
	return mcp.NewToolResultText(respondJSON(views)), nil
}

func handleCardDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name must not be empty"), nil
	}
	run, err := activeSession.Run()
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load catalog: %v", err), nil
	}
	for i, c := range run.Ranked {
		if _, ok := catalog.Find([]catalog.Card{c.Card}, name); ok {
			return mcp.NewToolResultText(respondJSON(viewOf(i+1, c))), nil
		}
	}
	return mcp.NewToolResultErrorf("No card named %q.", name), nil
}

func handleGetWeights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sc, err := activeSession.Scorer()
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load weights: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sc.Weights())), nil
}

// BalanceResponse is the JSON returned by balance_summary.
type BalanceResponse struct {
	CardsFile string          `json:"cards_file"`
	Summary   balance.Summary `json:"summary"`
	Fit       *balance.Fit    `json:"fit,omitempty"`
	Events    []EventView     `json:"events"`
}

func handleBalanceSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, err := activeSession.Run()
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load catalog: %v", err), nil
	}
	resp := BalanceResponse{CardsFile: run.CardsFile, Summary: run.Summary, Fit: run.Fit}
	for _, e := range activeSession.Events() {
		if e.Type == log.EventCardScored {
			continue
		}
		resp.Events = append(resp.Events, EventView{Seq: e.Seq, Type: e.Type.String(), Card: e.Card, Details: e.Details})
	}
	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []EventView{}
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func canonicalColor(color string) (string, bool) {
	for _, c := range catalog.Colors {
		if strings.EqualFold(c, color) {
			return c, true
		}
	}
	return "", false
}
