package presentation

import (
	"fmt"
	"io"

	"imgcopy/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

const ListingHeader = "Files in destination directory:"

type Printer struct {
	Writer  io.Writer
	Verbose bool

	renderer *lipgloss.Renderer
}

// NewPrinter binds styling to w, so writers that are not a terminal get plain
// text.
func NewPrinter(w io.Writer, verbose bool) Printer {
	return Printer{Writer: w, Verbose: verbose, renderer: lipgloss.NewRenderer(w)}
}

func (p Printer) PrintOutcome(outcome domain.CopyOutcome) {
	styles := p.styles()
	if outcome.Ok() {
		fmt.Fprintf(p.Writer, "%s %s\n", styles.success.Render("Successfully copied:"), outcome.Item.Name)
	} else {
		fmt.Fprintf(p.Writer, "%s %s: %v\n", styles.failure.Render("Error copying"), outcome.Item.Name, outcome.Err)
	}

	if !p.Verbose {
		return
	}
	if outcome.Ok() && outcome.Replaced {
		fmt.Fprintln(p.Writer, styles.dim.Render("  replaced existing "+outcome.Item.TargetPath))
	}
	if outcome.TakenAt != nil {
		fmt.Fprintln(p.Writer, styles.dim.Render("  taken "+outcome.TakenAt.Format("2006-01-02 15:04")))
	}
}

func (p Printer) PrintListing(entries []string) {
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, p.styles().header.Render(ListingHeader))
	for _, entry := range entries {
		fmt.Fprintf(p.Writer, "  %s\n", entry)
	}
}

func (p Printer) PrintSummary(report domain.CopyReport) {
	if !p.Verbose {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, SummaryLine(report))
}

func SummaryLine(report domain.CopyReport) string {
	return fmt.Sprintf("Copied %d of %d files, %d failed.", report.Copied(), len(report.Outcomes), report.Failed())
}

type printerStyles struct {
	success lipgloss.Style
	failure lipgloss.Style
	header  lipgloss.Style
	dim     lipgloss.Style
}

func (p Printer) styles() printerStyles {
	r := p.renderer
	if r == nil {
		r = lipgloss.NewRenderer(p.Writer)
	}
	return printerStyles{
		success: r.NewStyle().Foreground(lipgloss.Color("#85DCB0")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#E85D75")).Bold(true),
		header:  r.NewStyle().Bold(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
	}
}
