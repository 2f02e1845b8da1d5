// platformer is a lava-run platformer for the terminal.
//
// Usage:
//
//	platformer play              - Play the builtin pack (or --pack)
//	platformer levels            - List the levels of a pack
//	platformer check <pack.yaml> - Validate a level pack
//	platformer sim --script f    - Run a scripted game headlessly
//
// Global flags:
//
//	--fps <rate>          - Frame requests per second (default: 60)
//	--seed <value>        - Seed for oscillator directions
//	--config <path>       - Custom physics config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--debug               - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Lava run - a platformer in your terminal",
	Long: `Collect every coin in a level without touching the lava.

Available commands:
  play     - Play a level pack
  levels   - List the levels of a pack
  check    - Validate a level pack file
  sim      - Run a scripted game without a terminal UI

Examples:
  platformer play
  platformer play --pack ./packs/mine.yaml --watch
  platformer levels --dir ./packs
  platformer check ./packs/mine.yaml
  platformer sim --script ./run.yaml --level 2`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame requests per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed for oscillator directions (0 = random in play)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom physics config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(simCmd)
}
