package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/loop"
	"github.com/vovakirdan/tui-platformer/internal/render"
	"github.com/vovakirdan/tui-platformer/internal/world"
)

var (
	flagScript   string
	flagDuration time.Duration
	flagPlain    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a scripted game without a terminal UI",
	Long: `Plays a pack headlessly on a synthetic clock, applying the control
events of a YAML script, and prints the outcome and the final frame.
Runs with the same seed and script are reproducible.

Script format:
  events:
    - at: 0s
      control: right
      pressed: true
    - at: 1200ms
      control: up
      pressed: true

Examples:
  platformer sim --script run.yaml
  platformer sim --script run.yaml --level 2 --duration 30s --seed 7`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagPack, "pack", "", "Pack file or pack ID under --dir (default: builtin)")
	simCmd.Flags().StringVar(&flagDir, "dir", "./packs", "Directory searched for pack IDs")
	simCmd.Flags().IntVar(&flagLevel, "level", 1, "Level number to start at")
	simCmd.Flags().StringVar(&flagScript, "script", "", "Control script YAML (default: no input)")
	simCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Simulated time limit (default: script length + 5s)")
	simCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the final frame with plan glyphs")
}

func runSim(cmd *cobra.Command, args []string) {
	if err := sim(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func sim(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pack, err := loadPlayablePack()
	if err != nil {
		return err
	}
	if flagLevel < 1 || flagLevel > len(pack.Levels) {
		return fmt.Errorf("level %d out of range (pack has %d)", flagLevel, len(pack.Levels))
	}

	var script *loop.Script
	if flagScript != "" {
		if script, err = loop.LoadScript(flagScript); err != nil {
			return err
		}
	}
	limit := flagDuration
	if limit <= 0 {
		limit = 5 * time.Second
		if script != nil {
			limit += script.Duration()
		}
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	w, err := world.New(pack.Levels, cfg, flagSeed)
	if err != nil {
		return err
	}
	w.SetIndex(flagLevel - 1)

	opts := render.DefaultOptions()
	if flagPlain {
		opts = render.PlainOptions()
	}
	var lastFrame string
	renderer := loop.RenderFunc(func(snap world.Snapshot) {
		lastFrame = render.Frame(snap, opts)
	})

	sched := loop.NewManualScheduler()
	driver := loop.New(w, sched, renderer,
		loop.WithFixedStep(cfg.Loop.FixedStep()),
		loop.WithStallLimit(cfg.Loop.StallLimit()),
		loop.WithLogger(logger),
	)

	frame := time.Second / time.Duration(max(flagFPS, 1))
	res, err := loop.Run(ctx, driver, sched, script, frame, limit)
	if err != nil {
		return err
	}

	fmt.Println(lastFrame)
	fmt.Println()
	fmt.Printf("result:  %s\n", res.State)
	fmt.Printf("level:   %s (%d/%d)\n", w.Level().ID, res.Level+1, w.Count())
	fmt.Printf("cleared: %d\n", res.Cleared)
	fmt.Printf("time:    %v (%d steps)\n", res.Elapsed, res.Steps)
	return nil
}
