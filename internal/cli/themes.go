package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/clinigrid/clinigrid/pkg/pipeline"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// themesCommand creates the themes command listing color ramps.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List color themes with swatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Themes"))
			printNewline()
			for _, theme := range scale.Themes() {
				marker := "  "
				if theme.Name == pipeline.DefaultTheme {
					marker = StyleHighlight.Render("* ")
				}
				fmt.Printf("%s%-10s %s\n", marker, theme.Name, themeSwatch(theme))
			}
			printNewline()
			printDetail("* default · select with --theme <name>")
			return nil
		},
	}
}

// themeSwatch renders the five-bucket ramp as colored blocks.
func themeSwatch(theme scale.Theme) string {
	var sb strings.Builder
	for _, rgb := range theme.Ramp {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(rgb.Hex())).Render("██"))
	}
	return sb.String()
}
