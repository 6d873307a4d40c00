package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/aleksandri0/mathpower/internal/calcset"
	"github.com/aleksandri0/mathpower/internal/config"
	"github.com/aleksandri0/mathpower/internal/difficulty"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print freshly generated calculations without storing them",
	Long: `Generate calculations for one or all difficulties and print them with their
solutions. Nothing is written to the database; LLM requests are not recorded.
Useful for checking generator quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("level", "", "Difficulty to preview (default: all)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	source := cfg.Source
	if source == config.SourceBank {
		source = config.SourceArithmetic
	}

	levels := difficulty.All()
	if l, _ := cmd.Flags().GetString("level"); l != "" {
		level, err := difficulty.Parse(l)
		if err != nil {
			return err
		}
		levels = []difficulty.Level{level}
	}

	gen, err := newGenerator(ctx, cfg, source, nil)
	if err != nil {
		return err
	}
	set, err := calcset.Build(ctx, gen, levels, cfg.Count)
	if err != nil {
		return fmt.Errorf("generate calculations: %w", err)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Level", "#", "Expression", "Solution")
	for _, level := range set.Levels() {
		for i, c := range set[level] {
			t.Row(level.DisplayName(), fmt.Sprint(i+1), c.Expression, c.Solution)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Source: %s\n%s\n", source, t.String())
	return nil
}
