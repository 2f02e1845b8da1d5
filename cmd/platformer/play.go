package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

var (
	flagLevel int
	flagWatch bool
	flagMenu  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level pack",
	Long: `Play every level of a pack in order. Winning a level starts the next one.

Controls:
  Left/A, Right/D  - Run
  Up/W/Space       - Jump
  R                - Retry after burning, or replay a cleared pack
  ?                - Toggle help
  Q/Esc/Ctrl+C     - Quit

Terminals do not report key release, so a keypress holds its control for
a short window and key repeat keeps it held (see loop.key_hold_ms).

Examples:
  platformer play
  platformer play --level 2 --difficulty hard
  platformer play --menu
  platformer play --pack ./packs/mine.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPack, "pack", "", "Pack file or pack ID under --dir (default: builtin)")
	playCmd.Flags().StringVar(&flagDir, "dir", "./packs", "Directory searched for pack IDs")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level number to start at")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the pack file when it changes")
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Pick the starting level from a menu")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pack, err := loadPlayablePack()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alt screen owns stdout, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	start := flagLevel - 1
	if flagMenu {
		res, menuErr := tui.RunMenu(pack, rt)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			os.Exit(1)
		}
		if res.Quit {
			return
		}
		start, rt = res.Level, res.Config
	}
	if start < 0 || start >= len(pack.Levels) {
		fmt.Fprintf(os.Stderr, "Error: level %d out of range (pack has %d)\n", start+1, len(pack.Levels))
		os.Exit(1)
	}

	w, err := world.New(pack.Levels, cfg, rt.Seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	w.SetIndex(start)

	logger.Info("starting", "pack", pack.ID, "level", start+1, "seed", rt.Seed)

	packPath := ""
	if levelsFile(pack.FilePath) {
		packPath = pack.FilePath
	}

	runErr := tui.Run(w, tui.Options{
		Config:   cfg,
		Runtime:  rt,
		Logger:   logger,
		PackPath: packPath,
		Watch:    flagWatch,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// levelsFile reports whether path is a real file rather than the builtin pack.
func levelsFile(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
