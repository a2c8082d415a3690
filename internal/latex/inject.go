// Package latex mutates LaTeX resume sources: it injects and removes the
// hidden keyword block and compiles documents to PDF.
package latex

import (
	"regexp"
	"strings"
	"time"
)

// Marker lines delimiting the injected keyword block. These are a stable
// contract: external tooling greps for them to detect or strip prior
// injections, so they must never change.
const (
	MarkerStart = "% resume_helper keywords start"
	MarkerEnd   = "% resume_helper keywords end"
)

const endDocument = `\end{document}`

var blockPattern = regexp.MustCompile(
	`(?s)` + regexp.QuoteMeta(MarkerStart) + `.*?` + regexp.QuoteMeta(MarkerEnd) + `\n?`,
)

// BuildBlock renders the marker-delimited keyword block. The keywords are
// space-joined inside a white-on-white color group so they are machine
// readable but invisible in the rendered PDF.
func BuildBlock(kws []string, now time.Time) string {
	timestamp := now.UTC().Format("2006-01-02 15:04") + " UTC"
	lines := []string{
		MarkerStart,
		"% generated " + timestamp,
		`\par`,
		`{\color{white} ` + strings.Join(kws, " ") + `}`,
		MarkerEnd,
	}
	return strings.Join(lines, "\n") + "\n"
}

// RemoveBlock strips any previously injected keyword block and normalizes the
// document to end with a single newline.
func RemoveBlock(doc string) string {
	cleaned := blockPattern.ReplaceAllString(doc, "")
	return strings.TrimRight(cleaned, " \t\r\n") + "\n"
}

// Inject returns a copy of doc containing exactly one keyword block. Any
// prior block is removed first, so repeated calls never accumulate blocks and
// an empty keyword list restores the clean document. The block is inserted
// immediately before the last \end{document}; when that marker is absent the
// block is appended at the end and a warning is emitted. A further warning is
// emitted when the document declares neither the xcolor nor the color
// package, since \color{white} would then fail to render.
func Inject(doc string, kws []string, now time.Time) (string, bool, []string) {
	warnings := []string{}
	cleaned := RemoveBlock(doc)

	if len(kws) == 0 {
		return cleaned, cleaned != doc, warnings
	}

	if !strings.Contains(doc, `\usepackage{xcolor}`) && !strings.Contains(doc, `\usepackage{color}`) {
		warnings = append(warnings,
			`Add \usepackage{xcolor} to your preamble so the hidden keywords render correctly.`)
	}

	block := BuildBlock(kws, now)

	var updated string
	if idx := strings.LastIndex(cleaned, endDocument); idx >= 0 {
		before := strings.TrimRight(cleaned[:idx], " \t\r\n")
		after := cleaned[idx+len(endDocument):]
		updated = before + "\n\n" + block + "\n" + endDocument + after
	} else {
		updated = strings.TrimRight(cleaned, " \t\r\n") + "\n\n" + block
		warnings = append(warnings,
			`Could not find \end{document} in your LaTeX file. Keywords appended at the end.`)
	}

	return updated, true, warnings
}
