package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/clinigrid/clinigrid/pkg/chart"
	"github.com/clinigrid/clinigrid/pkg/pipeline"
	"github.com/clinigrid/clinigrid/pkg/rank"
	"github.com/clinigrid/clinigrid/pkg/scale"
)

// Grid layout constants. Cells are three terminal columns wide so the day
// header, heat blocks, and bubble glyphs all align.
const (
	previewLabelWidth = 22
	previewCellWidth  = 3
)

// bubbleGlyphs maps buckets 1..5 to circles of increasing weight.
var bubbleGlyphs = [5]string{"·", "∙", "•", "●", "◉"}

// previewCommand creates the preview command for interactive exploration.
func (c *CLI) previewCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [subject]",
		Short: "Explore a pivot matrix interactively",
		Long: `Explore a pivot matrix interactively in the terminal.

The preview command fetches and projects the subject's pivot, then opens a
scrollable heatmap grid. Arrow keys pan across rows and date columns, t
cycles the color theme, and m toggles between heat blocks and bubble glyphs.

The grid is a view over the same ranked projection the exporters use, so
what you see matches what render and export produce.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(&opts)
			if err := c.resolveSubject(cmd.Context(), args, &opts); err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "pivot category: symptom (default), diagnosis, category, hrsn")
	cmd.Flags().StringVar(&opts.Curve, "curve", "", "scaling curve: linear (default), log")
	cmd.Flags().BoolVar(&opts.AllRows, "all-rows", false, "rank every row instead of the top window")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and fetch fresh data")

	return cmd
}

// runPreview fetches and projects the matrix, then hands off to the TUI.
func (c *CLI) runPreview(ctx context.Context, opts pipeline.Options) error {
	if err := opts.ValidateForFetch(); err != nil {
		return err
	}
	setCLIDefaults(&opts)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, err := c.newSource(ctx)
	if err != nil {
		return fmt.Errorf("initialize source: %w", err)
	}
	defer src.Close(ctx)
	opts.Source = src
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", opts.Subject))
	spinner.Start()

	m, _, err := runner.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return fmt.Errorf("fetch pivot: %w", err)
	}
	p, err := pipeline.Project(m, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return fmt.Errorf("project matrix: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if p.Empty() {
		printWarning("Nothing to preview: the matrix has no cells")
		return nil
	}

	c.rememberRun(ctx, opts)

	model := NewPreviewModel(p, opts.Theme)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}

// =============================================================================
// PreviewModel - Interactive matrix grid
// =============================================================================

// PreviewModel is the bubbletea model for the scrollable matrix preview.
type PreviewModel struct {
	RowOffset  int
	ColOffset  int
	ThemeIndex int
	Bubbles    bool
	Width      int
	Height     int

	projection *chart.Projection
	rows       []rank.Row
	cols       []string // column labels for value lookup, sorted
	days       []string // display form of each column, aligned to cols
	themes     []scale.Theme
}

// NewPreviewModel creates a preview model positioned at the top-left of the
// grid, using the named theme when it exists.
func NewPreviewModel(p *chart.Projection, themeName string) PreviewModel {
	themes := scale.Themes()
	idx := 0
	for i, t := range themes {
		if t.Name == themeName {
			idx = i
			break
		}
	}
	return PreviewModel{
		ThemeIndex: idx,
		Width:      80,
		Height:     24,
		projection: p,
		rows:       p.Ranked(),
		cols:       p.Columns(),
		days:       p.Labels(),
		themes:     themes,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.RowOffset--
		case "down", "j":
			m.RowOffset++
		case "left", "h":
			m.ColOffset--
		case "right", "l":
			m.ColOffset++
		case "pgup":
			m.RowOffset -= m.gridRows()
		case "pgdown":
			m.RowOffset += m.gridRows()
		case "home":
			m.RowOffset, m.ColOffset = 0, 0
		case "end":
			m.RowOffset = m.maxRowOffset()
		case "t":
			m.ThemeIndex = (m.ThemeIndex + 1) % len(m.themes)
		case "m":
			m.Bubbles = !m.Bubbles
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	}
	m.clamp()
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.projection.Title()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓/←/→ scroll  pgup/pgdn page  t theme  m mode  q quit"))
	b.WriteString("\n\n")

	rowEnd := m.RowOffset + m.gridRows()
	if rowEnd > len(m.rows) {
		rowEnd = len(m.rows)
	}
	colEnd := m.ColOffset + m.gridCols()
	if colEnd > len(m.cols) {
		colEnd = len(m.cols)
	}

	// Day-of-month header over the visible date window.
	b.WriteString(strings.Repeat(" ", previewLabelWidth+1))
	for ci := m.ColOffset; ci < colEnd; ci++ {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%-*s", previewCellWidth, columnDay(m.days[ci]))))
	}
	b.WriteString("\n")

	theme := m.currentTheme()
	eng := m.projection.Engine()
	for ri := m.RowOffset; ri < rowEnd; ri++ {
		row := m.rows[ri]
		b.WriteString(StyleValue.Render(fmt.Sprintf("%-*s", previewLabelWidth, truncateLabel(row.Label(), previewLabelWidth))))
		b.WriteString(" ")
		for ci := m.ColOffset; ci < colEnd; ci++ {
			b.WriteString(m.cell(eng, theme, row.Name, m.cols[ci]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	mode := "heatmap"
	if m.Bubbles {
		mode = "bubbles"
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("rows %d-%d of %d · cols %d-%d of %d · theme %s · %s",
		m.RowOffset+1, rowEnd, len(m.rows),
		m.ColOffset+1, colEnd, len(m.cols),
		theme.Name, mode)))

	return b.String()
}

// cell renders one grid cell in the active mode and theme.
func (m PreviewModel) cell(eng scale.Engine, theme scale.Theme, rowName, col string) string {
	value := m.projection.Value(rowName, col)
	bucket := eng.Bucket(value, m.projection.MaxValue())
	if bucket == scale.BucketEmpty {
		if m.Bubbles {
			return strings.Repeat(" ", previewCellWidth)
		}
		return StyleDim.Render("··") + " "
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Color(bucket).Hex()))
	if m.Bubbles {
		return style.Render(bubbleGlyphs[bucket-1]) + "  "
	}
	return style.Render("██") + " "
}

// gridRows returns how many matrix rows fit in the viewport.
func (m PreviewModel) gridRows() int {
	rows := m.Height - 6
	if rows < 5 {
		rows = 5
	}
	return rows
}

// gridCols returns how many date columns fit in the viewport.
func (m PreviewModel) gridCols() int {
	cols := (m.Width - previewLabelWidth - 1) / previewCellWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m PreviewModel) maxRowOffset() int {
	max := len(m.rows) - m.gridRows()
	if max < 0 {
		max = 0
	}
	return max
}

func (m PreviewModel) maxColOffset() int {
	max := len(m.cols) - m.gridCols()
	if max < 0 {
		max = 0
	}
	return max
}

func (m *PreviewModel) clamp() {
	if m.RowOffset > m.maxRowOffset() {
		m.RowOffset = m.maxRowOffset()
	}
	if m.RowOffset < 0 {
		m.RowOffset = 0
	}
	if m.ColOffset > m.maxColOffset() {
		m.ColOffset = m.maxColOffset()
	}
	if m.ColOffset < 0 {
		m.ColOffset = 0
	}
}

// columnDay extracts the day of month from an MM/DD/YY column label.
func columnDay(col string) string {
	if len(col) == 8 {
		return col[3:5]
	}
	if len(col) >= 2 {
		return col[len(col)-2:]
	}
	return col
}

// truncateLabel shortens long row labels with an ellipsis.
func truncateLabel(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// currentTheme exposes the active theme for tests and status display.
func (m PreviewModel) currentTheme() scale.Theme {
	return m.themes[m.ThemeIndex]
}
