package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Reporter is the sink for user-facing status output. Commands receive one
// explicitly instead of writing to a shared console.
type Reporter interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Success(format string, args ...any)
	Error(format string, args ...any)
	// Print writes pre-rendered output followed by a newline.
	Print(s string)
	// Step runs fn while showing title as in-progress.
	Step(title string, fn func() error) error
}

// Console writes to a terminal or plain stream.
type Console struct {
	w           io.Writer
	interactive bool
}

// NewConsole returns a Console on w. Spinners are only used when w is a terminal.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, interactive: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) Info(format string, args ...any) {
	fmt.Fprintln(c.w, fmt.Sprintf(format, args...))
}

func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.w, warnStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.w, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (c *Console) Error(format string, args ...any) {
	fmt.Fprintln(c.w, errorStyle.Render("Error: "+fmt.Sprintf(format, args...)))
}

func (c *Console) Print(s string) {
	fmt.Fprintln(c.w, s)
}

func (c *Console) Step(title string, fn func() error) error {
	if c.interactive {
		return runSpinner(c.w, title, fn)
	}
	fmt.Fprintln(c.w, dimStyle.Render(title))
	return fn()
}
