package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of a pack",
	Long: `Shows the levels of a pack with their size and contents.
With --dir and no --pack, lists every pack found in the directory.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagPack, "pack", "", "Pack file or pack ID under --dir (default: builtin)")
	levelsCmd.Flags().StringVar(&flagDir, "dir", "./packs", "Directory searched for packs")
}

func runLevels(cmd *cobra.Command, args []string) {
	if flagPack == "" && cmd.Flags().Changed("dir") {
		listPacks()
		return
	}

	pack, err := loadPack()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := pack.Name
	if name == "" {
		name = pack.ID
	}
	fmt.Printf("%s (%s)\n\n", name, pack.FilePath)

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, src := range pack.Levels {
		maxIDLen = max(maxIDLen, len(src.ID))
		maxNameLen = max(maxNameLen, len(src.Name))
	}

	fmt.Printf("  %-*s  %-*s  %7s  %5s  %4s\n", maxIDLen, "ID", maxNameLen, "Name", "Size", "Coins", "Lava")
	fmt.Printf("  %-*s  %-*s  %7s  %5s  %4s\n", maxIDLen, "--", maxNameLen, "----", "----", "-----", "----")

	for _, src := range pack.Levels {
		plan, err := levels.Parse(src.Plan)
		if err != nil {
			fmt.Printf("  %-*s  %-*s  %v\n", maxIDLen, src.ID, maxNameLen, src.Name, err)
			continue
		}
		lava := plan.Count(levels.GlyphLava) + plan.Count(levels.GlyphLavaDrip) +
			plan.Count(levels.GlyphLavaBounce) + plan.Count(levels.GlyphLavaSlide)
		fmt.Printf("  %-*s  %-*s  %7s  %5d  %4d\n", maxIDLen, src.ID, maxNameLen, src.Name,
			fmt.Sprintf("%dx%d", plan.Columns, plan.Rows), plan.Count(levels.GlyphCoin), lava)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play --level <n>' to start at a level.")
}

func listPacks() {
	packs, err := levels.NewLoader(flagDir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(packs) == 0 {
		fmt.Printf("No packs in %s.\n", flagDir)
		return
	}

	fmt.Printf("Packs in %s:\n\n", flagDir)
	for _, p := range packs {
		fmt.Printf("  %-16s  %2d levels  %s\n", p.ID, len(p.Levels), p.Name)
	}
	fmt.Println()
	fmt.Println("Run 'platformer play --pack <id>' to play a pack.")
}
