// Package seed parses seed command flags and loads game content into the
// database.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/monsterdex/internal/platform/cmd"
	"github.com/louisbranch/monsterdex/internal/seed"
	storagesqlite "github.com/louisbranch/monsterdex/internal/services/game/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"MONSTERDEX_SEED_DB_PATH" envDefault:"data/monsterdex.db"`
	// Content is a YAML file; empty selects the embedded base content.
	Content string `env:"MONSTERDEX_SEED_CONTENT"`
	Verbose bool   `env:"MONSTERDEX_SEED_VERBOSE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "The SQLite database path")
	fs.StringVar(&cfg.Content, "content", cfg.Content, "YAML content file (default: embedded base content)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads content and writes it into the configured database.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	content, err := loadContent(cfg.Content)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := storagesqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open sqlite store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	var logger *log.Logger
	if cfg.Verbose {
		logger = log.New(out, "  ", 0)
	}
	summary, err := seed.Apply(ctx, store, content, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d types, %d type chart rows, %d species, %d achievements into %s\n",
		summary.Types, summary.TypeChart, summary.Species, summary.Achievements, cfg.DBPath)
	return nil
}

func loadContent(path string) (seed.Content, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return seed.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return seed.Content{}, fmt.Errorf("resolve content path: %w", err)
	}
	return seed.Load(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}
