package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/peterkuimelis/cardpower/internal/analyzer"
	"github.com/peterkuimelis/cardpower/internal/catalog"
	"github.com/peterkuimelis/cardpower/internal/config"
	applog "github.com/peterkuimelis/cardpower/internal/log"
	"github.com/peterkuimelis/cardpower/internal/report"
	"github.com/peterkuimelis/cardpower/internal/score"
)

func main() {
	if len(os.Args) < 2 {
		runAnalyze(nil)
		return
	}

	cmd := os.Args[1]
	switch cmd {
	case "analyze":
		runAnalyze(os.Args[2:])
	case "score":
		runScore(os.Args[2:])
	case "weights":
		runWeights(os.Args[2:])
	case "runs":
		runRuns(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		if strings.HasPrefix(cmd, "-") {
			runAnalyze(os.Args[1:])
			return
		}
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  cardpower [analyze] [--cards FILE] [--weights FILE] [--out FILE] [--xlsx FILE] [--db FILE]")
	fmt.Println("  cardpower score [--cost N] [--weights FILE] EFFECT")
	fmt.Println("  cardpower weights [--weights FILE]")
	fmt.Println("  cardpower runs --db FILE")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  analyze  Score every card in the catalog, print the rankings and export them")
	fmt.Println("  score    Score a single effect text")
	fmt.Println("  weights  Print the effective weight table as YAML")
	fmt.Println("  runs     List runs stored in a results database")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runAnalyze(args []string) {
	cfg := config.Load()
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfg.RegisterInputFlags(fs)
	cfg.RegisterOutputFlags(fs)
	fs.Parse(args)

	applog.ConfigureLogging(cfg.LogLevel, os.Stderr)
	logger := applog.NewTextLogger(os.Stdout)
	logger.Verbose = cfg.Verbose

	run, err := analyzer.Analyze(cfg, logger)
	if errors.Is(err, catalog.ErrNotFound) {
		fmt.Printf("[ERROR] cards file not found: %s\n", cfg.CardsFile)
		os.Exit(1)
	}
	if err != nil {
		fail(err)
	}

	report.PrintReport(os.Stdout, run, cfg.Detail)
	fmt.Println()

	if cfg.OutputFile != "" {
		if err := report.ExportJSON(cfg.OutputFile, run.Ranked); err != nil {
			fail(err)
		}
		logger.Log(applog.NewExportEvent("JSON", cfg.OutputFile, len(run.Ranked)))
	}
	if cfg.XLSXFile != "" {
		if err := report.ExportXLSX(cfg.XLSXFile, run); err != nil {
			fail(err)
		}
		logger.Log(applog.NewExportEvent("XLSX", cfg.XLSXFile, len(run.Ranked)))
	}
	if cfg.DBFile != "" {
		id, err := report.ExportSQLite(cfg.DBFile, cfg.CardsFile, run.Weights, run.Ranked)
		if err != nil {
			fail(err)
		}
		logger.Log(applog.NewExportEvent("SQLite", cfg.DBFile+" (run "+id+")", len(run.Ranked)))
	}

	if cfg.Detail {
		report.PrintCalibration(os.Stdout)
	}
}

func runScore(args []string) {
	cfg := config.Load()
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	cost := fs.Int("cost", 0, "resource cost of the card")
	name := fs.String("name", "(ad hoc)", "name shown in the report")
	color := fs.String("color", "", "deck color (Red, Blue or Green)")
	fs.StringVar(&cfg.WeightsFile, "weights", cfg.WeightsFile, "path to weights YAML file (overrides defaults)")
	fs.Parse(args)

	effect := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(effect) == "" {
		fmt.Fprintln(os.Stderr, "Error: missing effect text")
		printUsage()
		os.Exit(1)
	}

	w, err := config.LoadWeights(cfg.WeightsFile)
	if err != nil {
		fail(err)
	}
	c := catalog.Card{Name: *name, Color: *color, Cost: *cost, Effect: effect}
	report.PrintDetail(os.Stdout, score.ScoredCard{Card: c, Result: score.New(w).Score(c)})
}

func runWeights(args []string) {
	cfg := config.Load()
	fs := flag.NewFlagSet("weights", flag.ExitOnError)
	fs.StringVar(&cfg.WeightsFile, "weights", cfg.WeightsFile, "path to weights YAML file (overrides defaults)")
	fs.Parse(args)

	w, err := config.LoadWeights(cfg.WeightsFile)
	if err != nil {
		fail(err)
	}
	if err := config.WriteWeights(os.Stdout, w); err != nil {
		fail(err)
	}
}

func runRuns(args []string) {
	cfg := config.Load()
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	fs.StringVar(&cfg.DBFile, "db", cfg.DBFile, "path to SQLite results database")
	fs.Parse(args)

	if cfg.DBFile == "" {
		fail(errors.New("--db is required"))
	}
	store, err := report.OpenStore(cfg.DBFile)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	runs, err := store.Runs()
	if err != nil {
		fail(err)
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %4d cards  %s\n", r.CreatedAt, r.ID, r.CardCount, r.CardsFile)
	}
}
