package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/lintang-b-s/pleguide/pkg/lesson"
)

// Renderer prints a lesson page on a terminal. Text blocks go through
// glamour; result blocks are framed with lipgloss so they stand out from the
// prose.
type Renderer struct {
	md      *glamour.TermRenderer
	okStyle lipgloss.Style
	koStyle lipgloss.Style
	echo    lipgloss.Style
}

// NewRenderer accepts a glamour standard style name ("dark", "light",
// "notty", ...) or "auto".
func NewRenderer(style string, width int) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	base := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		PaddingLeft(1).
		MarginLeft(2)
	return &Renderer{
		md:      md,
		okStyle: base.BorderForeground(lipgloss.Color("2")),
		koStyle: base.BorderForeground(lipgloss.Color("1")),
		echo:    lipgloss.NewStyle().Italic(true).MarginLeft(2),
	}, nil
}

// Markdown flattens the text blocks of the page into one markdown document.
// Result blocks are not included.
func Markdown(page *lesson.Page) string {
	var sb strings.Builder
	for _, b := range page.Blocks {
		writeBlock(&sb, page, b)
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, page *lesson.Page, b lesson.Block) {
	switch b.Kind {
	case lesson.HeadingBlock:
		fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", b.Level), b.Text)
	case lesson.MarkdownBlock:
		sb.WriteString(strings.TrimRight(b.Text, "\n"))
		sb.WriteString("\n\n")
	case lesson.FormulaBlock:
		fmt.Fprintf(sb, "```latex\n%s\n```\n\n", b.Text)
	case lesson.ChartBlock:
		if page.ChartNote != "" {
			fmt.Fprintf(sb, "_%s_\n\n", page.ChartNote)
		}
	case lesson.FormBlock:
		if page.FormNote != "" {
			fmt.Fprintf(sb, "_%s_\n\n", page.FormNote)
		}
	}
}

func (r *Renderer) Render(w io.Writer, page *lesson.Page) error {
	var pending strings.Builder
	flush := func() error {
		if pending.Len() == 0 {
			return nil
		}
		out, err := r.md.Render(pending.String())
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		pending.Reset()
		_, err = io.WriteString(w, out)
		return err
	}

	for _, b := range page.Blocks {
		if b.Kind != lesson.ResultBlock {
			writeBlock(&pending, page, b)
			if b.Kind == lesson.FormBlock && len(page.FormMessages) > 0 {
				if err := flush(); err != nil {
					return err
				}
				if _, err := fmt.Fprintln(w, r.echo.Render(strings.Join(page.FormMessages, "\n"))); err != nil {
					return err
				}
			}
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, r.result(b)); err != nil {
			return err
		}
	}
	return flush()
}

func (r *Renderer) result(b lesson.Block) string {
	lines := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = strings.Trim(l, "*")
	}
	style := r.okStyle
	if b.Failure {
		style = r.koStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}
