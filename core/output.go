package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// Status line styles. Report text itself is never styled.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAF5F"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#88AABB"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5C00"))
)

// Renderable is a formatted report: its text form and, for JSON output,
// its sections.
type Renderable interface {
	String() string
	SectionList() []Section
}

// Printer handles all display output for the CLI.
type Printer struct {
	JSON   bool
	Writer io.Writer
}

// NewPrinter creates a Printer writing to w, or to stdout when w is nil.
func NewPrinter(jsonMode bool, w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{JSON: jsonMode, Writer: w}
}

// PrintReport writes the report for file to the configured output with
// trailing whitespace removed.
func (p *Printer) PrintReport(file string, r Renderable) error {
	if p.JSON {
		return p.printJSON(file, r)
	}
	_, err := fmt.Fprintln(p.Writer, strings.TrimRightFunc(r.String(), unicode.IsSpace))
	return err
}

func (p *Printer) printJSON(file string, r Renderable) error {
	type jsonOutput struct {
		FilePath string    `json:"file"`
		Sections []Section `json:"sections"`
		Message  string    `json:"message,omitempty"`
	}
	out := jsonOutput{FilePath: file, Sections: r.SectionList()}
	if len(out.Sections) == 0 {
		// An empty report still says so.
		out.Sections = []Section{}
		out.Message = r.String()
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.Writer, string(b))
	return err
}

// PrintSuccess prints a success message.
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.Writer, successStyle.Render("✓ "+msg))
}

// PrintInfo prints an info line (suppressed in JSON mode).
func (p *Printer) PrintInfo(msg string) {
	if !p.JSON {
		fmt.Fprintln(p.Writer, infoStyle.Render(msg))
	}
}

// PrintError prints an error to stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ Error: "+msg))
}

// ReportPath returns where the report for imagePath is saved: the image's
// file name plus suffix, inside outDir.
func ReportPath(outDir, imagePath, suffix string) string {
	return filepath.Join(outDir, filepath.Base(imagePath)+suffix)
}

// SaveReport writes text to ReportPath, replacing any existing file, and
// returns the path.
func SaveReport(outDir, imagePath, suffix, text string) (string, error) {
	path := ReportPath(outDir, imagePath, suffix)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
