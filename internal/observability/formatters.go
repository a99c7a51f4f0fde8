// Package observability renders human-readable summaries for the CLI text
// output mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobboard/internal/experience"
	"github.com/jonathan/jobboard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for text mode
type Printer struct {
	out      io.Writer
	maxItems int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, maxItems: maxItemsToShow}
}

// WithMaxItems sets how many list items are shown before "... and N more".
// Values below one show everything.
func (p *Printer) WithMaxItems(n int) *Printer {
	p.maxItems = n
	return p
}

func (p *Printer) visible(n int) int {
	if p.maxItems < 1 {
		return n
	}
	return min(n, p.maxItems)
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintListings outputs search results, one block per listing.
func (p *Printer) PrintListings(title string, listings []types.Listing) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found: %d\n", len(listings)))

	count := p.visible(len(listings))
	for i := 0; i < count; i++ {
		l := listings[i]
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, l.Title))

		who := l.Company
		if l.IsResume() {
			who = l.Name
		}
		if who != "" {
			sb.WriteString(fmt.Sprintf("    %s", who))
			if l.Verified {
				sb.WriteString(" ✓")
			}
			sb.WriteString("\n")
		}

		where := l.Location
		if l.Remote {
			where = strings.TrimPrefix(where+", remote", ", ")
		}
		if where != "" {
			sb.WriteString(fmt.Sprintf("    Location: %s\n", where))
		}
		if l.Salary != "" {
			sb.WriteString(fmt.Sprintf("    Salary:   %s\n", l.Salary))
		}
		if len(l.Requirements) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills:   %s\n", strings.Join(l.Requirements, ", ")))
		}
		sb.WriteString(fmt.Sprintf("    Posted:   %s\n", l.Date.Format("2006-01-02")))
	}

	if len(listings) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(listings)-count))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExperience outputs a work-experience summary with the total first.
func (p *Printer) PrintExperience(summary experience.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %s\n", summary.Label))

	for _, e := range summary.Entries {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s, %s\n", e.Position, e.CompanyName))
		sb.WriteString(fmt.Sprintf("    %s\n", e.Period))
		if e.DurationLabel != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", e.DurationLabel))
		}
	}

	p.printBox("WORK EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}
