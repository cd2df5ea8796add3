package ui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/ssmlkit/internal/catalog"
	"github.com/gubarz/ssmlkit/internal/dump"
	"github.com/gubarz/ssmlkit/internal/executor"
)

// getTTY returns file handles for TUI input/output.
// Uses /dev/tty to bypass shell pipes and command substitution.
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		// stdout is captured; draw on the terminal directly
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// filterDocuments drops documents that failed to parse when onlyValid is set
func filterDocuments(docs []*catalog.Document, onlyValid bool) []*catalog.Document {
	if !onlyValid {
		return docs
	}
	result := make([]*catalog.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Valid() {
			result = append(result, doc)
		}
	}
	return result
}

// Options configures the browser
type Options struct {
	Query     string
	Format    dump.Format
	OnlyValid bool
}

// Run launches the browser. The chosen document is rendered in the
// format active when it was selected and handed to exec.
func Run(ctx context.Context, index *catalog.Index, exec *executor.Executor, opts Options) error {
	docs := filterDocuments(index.Documents, opts.OnlyValid)
	if len(docs) == 0 {
		return fmt.Errorf("no documents found")
	}

	m := newMainModel(docs, opts.Format)
	if opts.Query != "" {
		m.textInput.SetValue(opts.Query)
		m.filterDocs()
	}

	ttyIn, ttyOut, cleanup := getTTY()
	RefreshStyles() // after getTTY sets up the renderer
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn), tea.WithContext(ctx))
	finalModel, err := p.Run()
	cleanup()
	if err != nil {
		return err
	}

	result := finalModel.(mainModel)
	if result.selected == nil {
		return nil
	}

	text, err := dump.Render(result.selected.Root, result.format)
	if err != nil {
		return err
	}
	return exec.Output(ctx, text)
}
