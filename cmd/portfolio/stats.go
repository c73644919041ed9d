package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ganot/dx-portfolio/internal/domain/project"
)

func statsCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print portfolio statistics from the curated store",
		Long: `Reads data/projects.json without running the pipeline and prints the
per-stage project counts. Projects whose status is outside the known stages
count toward the total only and are reported as unclassified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Reload(cmd.Context()); err != nil {
				return fmt.Errorf("reading curated store: %w", err)
			}
			index := a.store.Index()
			if index.Stats.Total == 0 {
				color.New(color.FgHiBlack).Println("No projects in the curated store. Run 'portfolio init' first.")
				return nil
			}
			printStats(index.Stats)
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "data root (overrides config)")
	return cmd
}

func printStats(stats project.Stats) {
	titleColor := color.New(color.FgHiCyan, color.Bold)
	countColor := color.New(color.FgHiGreen)
	dimColor := color.New(color.FgHiBlack)
	warnColor := color.New(color.FgHiYellow)

	titleColor.Printf("Projects: %d\n", stats.Total)
	for _, status := range project.Statuses {
		n := stats.ByStatus(status)
		if n == 0 {
			dimColor.Printf("  %-10s %3d\n", status, n)
			continue
		}
		countColor.Printf("  %-10s %3d\n", status, n)
	}
	if unclassified := stats.Total - stats.Classified(); unclassified > 0 {
		warnColor.Printf("  %-10s %3d\n", "other", unclassified)
	}
}
