package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cyberbobjr/javadoc-ai/internal/config"
)

const (
	ledgerFileName   = "state.json"
	progressFileName = "progress.json"
)

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// statePaths resolves the ledger and progress file locations, creating the
// state directory when missing. A relative state dir is anchored at the
// target repository, not the process working directory.
func statePaths(cfg *config.Config, workdir string) (ledgerPath, progressPath string, err error) {
	dir := cfg.State.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workdir, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("create state dir %s: %w", dir, err)
	}
	return filepath.Join(dir, ledgerFileName), filepath.Join(dir, progressFileName), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
