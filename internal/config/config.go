// Package config holds run settings and weight-table files.
package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the configuration for one analyzer process.
type Config struct {
	CardsFile   string // card catalog (.json or .yaml)
	WeightsFile string // optional weight overrides (.yaml)
	OutputFile  string // JSON export
	XLSXFile    string // optional workbook export
	DBFile      string // optional SQLite export
	Detail      bool   // print the full report, not just the ranking
	Verbose     bool   // log every scored card
	Port        int
	LogLevel    string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		CardsFile:  "src/cards.json",
		OutputFile: "card_power_results.json",
		Detail:     true,
		Port:       8080,
		LogLevel:   "INFO",
	}
}

// Load returns the defaults overridden by environment variables. Variables
// are first read from the given .env files (or ./.env); missing files are
// ignored.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)
	cfg := Default()
	cfg.applyEnv(os.Getenv)
	return cfg
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("CARDPOWER_CARDS"); v != "" {
		c.CardsFile = v
	}
	if v := getenv("CARDPOWER_WEIGHTS"); v != "" {
		c.WeightsFile = v
	}
	if v := getenv("CARDPOWER_OUTPUT"); v != "" {
		c.OutputFile = v
	}
	if v := getenv("CARDPOWER_XLSX"); v != "" {
		c.XLSXFile = v
	}
	if v := getenv("CARDPOWER_DB"); v != "" {
		c.DBFile = v
	}
	if v := getenv("CARDPOWER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("CARDPOWER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
}

// RegisterInputFlags binds the catalog and weight flags, defaulting to the
// current values.
func (c *Config) RegisterInputFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.CardsFile, "cards", c.CardsFile, "path to cards file (.json or .yaml)")
	fs.StringVar(&c.WeightsFile, "weights", c.WeightsFile, "path to weights YAML file (overrides defaults)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "diagnostic log level (DEBUG, INFO, WARN, ERROR)")
}

// RegisterOutputFlags binds the export and report flags.
func (c *Config) RegisterOutputFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.OutputFile, "out", c.OutputFile, "path to JSON results export (empty to skip)")
	fs.StringVar(&c.XLSXFile, "xlsx", c.XLSXFile, "path to XLSX workbook export")
	fs.StringVar(&c.DBFile, "db", c.DBFile, "path to SQLite results database")
	fs.BoolVar(&c.Detail, "detail", c.Detail, "print color, overtuned, strategic and efficiency sections")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log every scored card")
}
