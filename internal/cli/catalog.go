package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/engine"
	"github.com/matzehuels/algoviz/pkg/errors"
)

func (c *CLI) catalogCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "catalog [category]",
		Short:     "List the available algorithms with their complexity",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: categoryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := engine.Categories()
			if len(args) == 1 {
				cat := engine.Category(args[0])
				if !slices.Contains(cats, cat) {
					return errors.New(errors.ErrCodeNotFound, "unknown category %q", args[0])
				}
				cats = []engine.Category{cat}
			}
			if asJSON {
				out := make(map[engine.Category][]engine.AlgorithmInfo, len(cats))
				for _, cat := range cats {
					out[cat] = engine.Catalog(cat)
				}
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			for _, cat := range cats {
				fmt.Fprintln(c.out, catalogTable(cat))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func categoryNames() []string {
	var names []string
	for _, c := range engine.Categories() {
		names = append(names, string(c))
	}
	return names
}

// catalogTable renders one category as a bordered table.
func catalogTable(cat engine.Category) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(colorCyan)
	cellStyle := lipgloss.NewStyle().Foreground(colorWhite)
	dimStyle := lipgloss.NewStyle().Foreground(colorDim)

	var rows [][]string
	for _, a := range engine.Catalog(cat) {
		rows = append(rows, []string{a.Key, a.Name, a.Time, a.Space, a.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Key", "Name", "Time", "Space", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return keyStyle.Padding(0, 1)
			case col == 4:
				return dimStyle.Padding(0, 1)
			}
			return cellStyle.Padding(0, 1)
		})

	return StyleTitle.Render(string(cat)) + "\n" + t.Render()
}
