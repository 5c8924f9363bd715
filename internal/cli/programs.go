package cli

import (
	"fmt"

	"futarinavi/internal/models"
	"futarinavi/internal/simulator"

	"github.com/spf13/cobra"
)

func newProgramsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List the benefit and support programs in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			cats := simulator.CategoryOrder
			if category != "" {
				cats = []models.ProgramCategory{models.ProgramCategory(category)}
			}

			shown := 0
			for _, c := range cats {
				ps := simulator.ProgramsByCategory(c)
				if len(ps) == 0 {
					continue
				}
				fmt.Fprintln(w, headerStyle.Render(simulator.CategoryLabel(c)))
				for _, p := range ps {
					line := fmt.Sprintf("  %-26s %s", p.Slug, p.Name)
					if p.Amount.Value != nil {
						line += "  " + amountStyle.Render("最大 "+simulator.FormatYen(*p.Amount.Value))
					}
					fmt.Fprintln(w, line)
					shown++
				}
			}
			if shown == 0 {
				return fmt.Errorf("no programs in category %q", category)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list this category (benefits, tax, insurance, housing, support)")
	return cmd
}
