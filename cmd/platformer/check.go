package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check <pack.yaml>...",
	Short: "Validate level pack files",
	Long: `Parses every level of each pack and reports problems: a missing or
repeated player spawn, no coins, ragged rows and unknown glyphs.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		pack, err := levels.LoadPackFile(path)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failed++
			continue
		}

		problems := pack.Validate()
		if len(problems) == 0 {
			fmt.Printf("ok   %s (%d levels)\n", path, len(pack.Levels))
			continue
		}
		fmt.Printf("FAIL %s\n", path)
		printProblems(os.Stdout, problems)
		failed++
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// printProblems writes per-level validation errors in level ID order.
func printProblems(w io.Writer, problems map[string]error) {
	ids := make([]string, 0, len(problems))
	for id := range problems {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Fprintf(w, "  level %s:\n", id)
		for _, line := range strings.Split(problems[id].Error(), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
