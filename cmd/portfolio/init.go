package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ganot/dx-portfolio/internal/config"
	"github.com/ganot/dx-portfolio/internal/pipeline"
)

func initCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Seed the data root and build the curated project store",
		Long: `Runs the initialization pipeline once: writes the default users and
settings when they are missing, then rebuilds data/projects.json and
data/projects-index.json from the users/ folder tree unless a non-empty
curated store already exists.`,
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

			out, err := a.pipeline.Run(cmd.Context())
			if out != nil {
				printOutcome(a.storage.Root(), out)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "data root (overrides config)")
	return cmd
}

func loadConfig(root string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config error: %w", err)
	}
	if root != "" {
		cfg.Data.Root = root
	}
	return cfg, nil
}

func printOutcome(root string, out *pipeline.Outcome) {
	titleColor := color.New(color.FgHiCyan, color.Bold)
	successColor := color.New(color.FgHiGreen)
	warnColor := color.New(color.FgHiYellow)
	failColor := color.New(color.FgHiRed, color.Bold)
	dimColor := color.New(color.FgHiBlack)

	titleColor.Println("Portafolio DX initialization")
	dimColor.Printf("  root:   %s\n", root)
	dimColor.Printf("  run id: %s\n", out.RunID)

	state := out.State
	seedLine := func(name string, existed bool) {
		if existed {
			dimColor.Printf("  %-12s kept\n", name)
		} else {
			successColor.Printf("  %-12s seeded\n", name)
		}
	}
	if state.Phase != pipeline.PhaseFailed {
		seedLine("users", state.UsersExisted)
		seedLine("settings", state.SettingsExisted)
	}

	switch {
	case !state.Rescanned && state.StoredProjects > 0:
		successColor.Printf("  projects     curated store reused (%d projects)\n", state.StoredProjects)
	case out.Persisted:
		successColor.Printf("  projects     %d rebuilt from folders\n", len(out.Manifests))
	case state.Rescanned && len(out.Manifests) == 0 && state.Phase == pipeline.PhaseDone:
		warnColor.Println("  projects     no project folders found; nothing written")
	}
	for _, skip := range out.Skipped {
		warnColor.Printf("  skipped      %s/%s: %v\n", skip.Target.UserID, skip.Target.ProjectID, skip.Err)
	}

	stats := out.Index.Stats
	if stats.Total > 0 {
		fmt.Println()
		printStats(stats)
	}

	if state.Phase == pipeline.PhaseFailed {
		failColor.Fprintln(os.Stderr, "initialization failed")
	}
}
