package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

// Pack selection flags shared by play, levels and sim.
var (
	flagPack string
	flagDir  string
)

// loadConfig loads the physics config and applies the difficulty preset.
func loadConfig() (config.PlatformerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// loadPack resolves --pack and --dir. A --pack that names a YAML file is
// loaded directly; otherwise it is looked up by ID under --dir. With no
// --pack the builtin pack is used.
func loadPack() (levels.Pack, error) {
	if flagPack == "" {
		return levels.Builtin(), nil
	}
	if levels.IsPackFile(flagPack) {
		return levels.LoadPackFile(flagPack)
	}
	return levels.NewLoader(flagDir).LoadByID(flagPack)
}

// loadPlayablePack is loadPack for commands that run the levels. Any level
// that fails validation rejects the whole pack.
func loadPlayablePack() (levels.Pack, error) {
	pack, err := loadPack()
	if err != nil {
		return pack, err
	}
	if problems := pack.Validate(); len(problems) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "pack %s has invalid levels:\n", pack.ID)
		printProblems(&b, problems)
		return pack, errors.New(strings.TrimRight(b.String(), "\n"))
	}
	return pack, nil
}

// newLogger returns a logger writing to --log-file, or to fallback when no
// file is set. The returned close function is never nil.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() {
			//nolint:errcheck // Best-effort close on exit
			f.Close()
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
