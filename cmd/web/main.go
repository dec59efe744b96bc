package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterkuimelis/cardpower/internal/config"
	applog "github.com/peterkuimelis/cardpower/internal/log"
	"github.com/peterkuimelis/cardpower/internal/web"
)

func main() {
	cfg := config.Load()
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP port to listen on")
	cfg.RegisterInputFlags(flag.CommandLine)
	flag.Parse()

	applog.ConfigureLogging(cfg.LogLevel, os.Stderr)

	srv, err := web.NewServer(cfg.CardsFile, cfg.WeightsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("cardpower web UI listening", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
