// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-keywords/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobText outputs a summary of the job text the pipeline worked from.
func (p *Printer) PrintJobText(result *pipeline.Result, jobURL string) {
	if result == nil || result.JobText == "" {
		return
	}

	var sb strings.Builder
	if result.ScrapedFromURL {
		sb.WriteString(fmt.Sprintf("Source:  %s\n", jobURL))
	} else {
		sb.WriteString("Source:  pasted description\n")
	}
	sb.WriteString(fmt.Sprintf("Length:  %d characters\n\n", len(result.JobText)))

	preview := result.JobText
	if len(preview) > 200 {
		preview = preview[:197] + "..."
	}
	sb.WriteString(preview)

	p.printBox("JOB DESCRIPTION", sb.String())
}

// PrintKeywords outputs the ranked candidates and which of them were missing
// from the resume.
func (p *Printer) PrintKeywords(result *pipeline.Result) {
	if result == nil || len(result.Candidates) == 0 {
		return
	}

	missing := make(map[string]bool, len(result.MissingKeywords))
	for _, kw := range result.MissingKeywords {
		missing[kw] = true
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates: %d", len(result.Candidates)))
	if result.AIEnabled {
		sb.WriteString(fmt.Sprintf("  (AI contributed %d)", len(result.AIKeywords)))
	}
	sb.WriteString("\n\n")

	count := min(len(result.Candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		kw := result.Candidates[i]
		marker := " "
		if missing[kw] {
			marker = "+"
		}
		sb.WriteString(fmt.Sprintf("%s #%d  %s\n", marker, i+1, kw))
	}
	if len(result.Candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(result.Candidates)-maxItemsToShow))
	}
	sb.WriteString(fmt.Sprintf("\n+ marks the %d keywords injected into the resume", len(result.MissingKeywords)))

	p.printBox("RANKED KEYWORDS", sb.String())
}

// PrintWarnings outputs accumulated warnings, if any.
func (p *Printer) PrintWarnings(result *pipeline.Result) {
	if result == nil || len(result.Warnings) == 0 {
		return
	}

	var sb strings.Builder
	for _, w := range result.Warnings {
		sb.WriteString(fmt.Sprintf("• %s\n", w))
	}

	p.printBox("WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}
