package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/cardpower/internal/config"
	applog "github.com/peterkuimelis/cardpower/internal/log"
	cardmcp "github.com/peterkuimelis/cardpower/internal/mcp"
)

func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.CardsFile, "cards", cfg.CardsFile, "path to cards file (.json or .yaml)")
	flag.StringVar(&cfg.WeightsFile, "weights", cfg.WeightsFile, "path to weights YAML file (overrides defaults)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic log level")
	flag.Parse()

	// stdout carries the MCP protocol
	applog.ConfigureLogging(cfg.LogLevel, os.Stderr)

	cardmcp.SetCardsFile(cfg.CardsFile)
	cardmcp.SetWeightsFile(cfg.WeightsFile)

	s := server.NewMCPServer("cardpower", "1.0.0")
	cardmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
