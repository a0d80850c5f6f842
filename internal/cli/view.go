package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pandiff/pkg/ast"
	"github.com/matzehuels/pandiff/pkg/diff"
)

// viewCommand creates the view command, an interactive browser of the
// block alignment of two documents.
func (c *CLI) viewCommand() *cobra.Command {
	var changesOnly bool

	cmd := &cobra.Command{
		Use:   "view BEFORE AFTER",
		Short: "Browse the block alignment of two documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, true)
			defer runner.Close()

			before, after, err := runner.Load(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			res, err := diff.Compare(before, after)
			if err != nil {
				return err
			}

			model := newViewModel(res.Entries, changesOnly)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVarP(&changesOnly, "changes", "c", false, "start with only added and removed blocks shown")
	return cmd
}

var (
	viewSelectedStyle = lipgloss.NewStyle().Bold(true)
	viewDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	viewGutterStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// viewRow is one pre-rendered entry of the alignment.
type viewRow struct {
	status      diff.Status
	changed     bool
	beforeIndex int
	afterIndex  int
	kind        string
	preview     string
}

// viewModel is the bubbletea model of "pandiff view".
type viewModel struct {
	all         []viewRow
	rows        []viewRow // all, or only the changes
	summary     diff.Summary
	changesOnly bool

	cursor int
	offset int
	height int
	width  int
}

func newViewModel(entries []diff.Entry, changesOnly bool) viewModel {
	all := make([]viewRow, len(entries))
	for i, e := range entries {
		all[i] = viewRow{
			status:      e.Status,
			changed:     e.Changed,
			beforeIndex: e.BeforeIndex,
			afterIndex:  e.AfterIndex,
			kind:        e.Block.Tag,
			preview:     ast.PlainText(e.Block),
		}
	}
	m := viewModel{
		all:     all,
		summary: diff.Summarize(entries),
		height:  15,
		width:   80,
	}
	m.setFilter(changesOnly)
	return m
}

func (m *viewModel) setFilter(changesOnly bool) {
	m.changesOnly = changesOnly
	m.rows = m.all
	if changesOnly {
		m.rows = nil
		for _, r := range m.all {
			if r.status != diff.StatusUnchanged {
				m.rows = append(m.rows, r)
			}
		}
	}
	m.cursor, m.offset = 0, 0
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown", " ":
			m.move(m.height)
		case "home", "g":
			m.move(-len(m.rows))
		case "end", "G":
			m.move(len(m.rows))
		case "n":
			m.nextChange()
		case "c":
			m.setFilter(!m.changesOnly)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-6, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta rows and scrolls to keep it visible.
func (m *viewModel) move(delta int) {
	if len(m.rows) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// nextChange jumps to the next added or removed row, wrapping around.
func (m *viewModel) nextChange() {
	for i := 1; i <= len(m.rows); i++ {
		j := (m.cursor + i) % len(m.rows)
		if m.rows[j].status != diff.StatusUnchanged {
			m.move(j - m.cursor)
			return
		}
	}
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("pandiff"))
	b.WriteString("  ")
	b.WriteString(viewDimStyle.Render(fmt.Sprintf("%d unchanged", m.summary.Unchanged)))
	b.WriteString(" ")
	b.WriteString(StyleAdded.Render(fmt.Sprintf("+%d", m.summary.Added)))
	b.WriteString(" ")
	b.WriteString(StyleRemoved.Render(fmt.Sprintf("-%d", m.summary.Removed)))
	if m.changesOnly {
		b.WriteString(viewDimStyle.Render("  (changes only)"))
	}
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render("↑/↓ navigate  n next change  c toggle unchanged  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(viewDimStyle.Render("  no blocks to show"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.rows))
	previewWidth := max(m.width-28, 10)
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor, previewWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	return b.String()
}

func (m viewModel) renderRow(r viewRow, selected bool, previewWidth int) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	marker, style := " ", StyleValue
	switch r.status {
	case diff.StatusAdded:
		marker, style = "+", StyleAdded
	case diff.StatusRemoved:
		marker, style = "-", StyleRemoved
	}
	if r.changed {
		marker += "~"
	} else {
		marker += " "
	}
	if selected {
		style = style.Inherit(viewSelectedStyle)
	}

	gutter := fmt.Sprintf("%4s %4s", lineNumber(r.beforeIndex), lineNumber(r.afterIndex))
	kind := fmt.Sprintf("%-10s", ast.Truncate(r.kind, 10))
	return cursor + viewGutterStyle.Render(gutter) + " " + style.Render(marker+" "+kind+" "+ast.Truncate(r.preview, previewWidth))
}

// lineNumber formats a block index for the gutter, 1-based, blank if the
// block does not come from that side.
func lineNumber(i int) string {
	if i < 0 {
		return ""
	}
	return strconv.Itoa(i + 1)
}
