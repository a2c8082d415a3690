// Package pipeline orchestrates the full keyword run: obtain job text,
// rank keyword candidates, find the ones missing from the resume, and inject
// them as a hidden block.
package pipeline

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-keywords/internal/config"
	"github.com/jonathan/resume-keywords/internal/extract"
	"github.com/jonathan/resume-keywords/internal/fetch"
	"github.com/jonathan/resume-keywords/internal/keywords"
	"github.com/jonathan/resume-keywords/internal/latex"
	"github.com/jonathan/resume-keywords/internal/llm"
)

// DefaultKeywordTarget is used when the caller does not specify a target.
const DefaultKeywordTarget = 20

// MaxKeywordTarget caps how many keywords a single run may inject.
const MaxKeywordTarget = 60

// candidateMultiplier controls how many heuristic candidates are ranked per
// requested keyword; the surplus absorbs candidates already on the resume.
const candidateMultiplier = 3

// ErrNoJobText indicates neither a usable URL nor pasted description text.
var ErrNoJobText = errors.New("provide a job description URL or paste the description text")

// Input describes one processing request.
type Input struct {
	ResumeContent  string
	JobURL         string
	JobDescription string
	KeywordTarget  int
	UseAI          bool
}

// Result carries everything a caller needs to report on a run.
type Result struct {
	ScrapedFromURL  bool
	JobText         string
	Candidates      []string
	AIKeywords      []string
	AIEnabled       bool
	MissingKeywords []string
	WhiteBlock      string
	UpdatedResume   string
	Modified        bool
	Warnings        []string
}

// Runner executes pipeline runs. The collaborators are injectable so tests
// can run without network, browser, or API key.
type Runner struct {
	FetchHTML  func(ctx context.Context, url string) (string, error)
	RenderHTML func(ctx context.Context, url string) (string, error)
	Extract    func(html, url string) string
	Augment    func(ctx context.Context, jobText, resumeText string, max int) []string
	Now        func() time.Time

	useBrowser bool
	verbose    bool
}

// New wires a Runner from configuration: HTTP fetch with an optional
// headless-browser retry, the default extraction cascade, and Gemini
// augmentation.
func New(cfg config.Config) *Runner {
	llmCfg := llm.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}
	return &Runner{
		FetchHTML: func(ctx context.Context, url string) (string, error) {
			result, err := fetch.Page(ctx, url, nil)
			if err != nil {
				return "", err
			}
			return result.HTML, nil
		},
		RenderHTML: func(ctx context.Context, url string) (string, error) {
			return fetch.RenderPage(ctx, url, 30*time.Second, cfg.Verbose)
		},
		Extract: extract.Extract,
		Augment: func(ctx context.Context, jobText, resumeText string, max int) []string {
			return llm.Keywords(ctx, llmCfg, jobText, resumeText, max)
		},
		Now:        time.Now,
		useBrowser: cfg.UseBrowser,
		verbose:    cfg.Verbose,
	}
}

// Run executes the pipeline for one request.
func (r *Runner) Run(ctx context.Context, in Input) (*Result, error) {
	warnings := []string{}

	target := in.KeywordTarget
	if target <= 0 {
		target = DefaultKeywordTarget
	}
	if target > MaxKeywordTarget {
		target = MaxKeywordTarget
	}

	jobText := ""
	scraped := false
	if strings.TrimSpace(in.JobURL) != "" {
		text, fetchWarnings := r.jobTextFromURL(ctx, strings.TrimSpace(in.JobURL))
		warnings = append(warnings, fetchWarnings...)
		if text != "" {
			jobText = text
			scraped = true
		}
	}
	if jobText == "" {
		jobText = strings.TrimSpace(in.JobDescription)
	}
	if jobText == "" {
		return nil, ErrNoJobText
	}

	var heuristic, aiKeywords []string
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		heuristic = keywords.Rank(jobText, target*candidateMultiplier)
		return nil
	})
	if in.UseAI {
		g.Go(func() error {
			aiKeywords = r.Augment(gCtx, jobText, in.ResumeContent, target*2)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if in.UseAI && len(aiKeywords) == 0 {
		warnings = append(warnings,
			"AI keyword extraction was requested but produced no results. Confirm GEMINI_API_KEY is configured.")
	}

	candidates := keywords.Merge(heuristic, aiKeywords)
	if r.verbose {
		log.Printf("[pipeline] keywords heuristic=%d ai=%d combined=%d",
			len(heuristic), len(aiKeywords), len(candidates))
	}

	missing := keywords.Missing(in.ResumeContent, candidates)
	if len(missing) > target {
		missing = missing[:target]
	}

	now := r.Now()
	updated, modified, injectionWarnings := latex.Inject(in.ResumeContent, missing, now)
	warnings = append(warnings, injectionWarnings...)

	whiteBlock := ""
	if len(missing) > 0 {
		whiteBlock = latex.BuildBlock(missing, now)
	}

	return &Result{
		ScrapedFromURL:  scraped,
		JobText:         jobText,
		Candidates:      candidates,
		AIKeywords:      aiKeywords,
		AIEnabled:       in.UseAI,
		MissingKeywords: missing,
		WhiteBlock:      whiteBlock,
		UpdatedResume:   updated,
		Modified:        modified,
		Warnings:        warnings,
	}, nil
}

// jobTextFromURL fetches and extracts the posting text, retrying through the
// headless browser when the plain fetch yields a suspiciously short result.
// Failures degrade to warnings: the caller may still have pasted text.
func (r *Runner) jobTextFromURL(ctx context.Context, url string) (string, []string) {
	var warnings []string

	html, err := r.FetchHTML(ctx, url)
	if err != nil {
		warnings = append(warnings, "Unable to fetch job description: "+err.Error())
		html = ""
	}

	text := ""
	if html != "" {
		text = r.Extract(html, url)
	}

	if r.useBrowser && fetch.ShouldUseBrowser(text) && r.RenderHTML != nil {
		rendered, err := r.RenderHTML(ctx, url)
		if err != nil {
			warnings = append(warnings, "Browser rendering failed: "+err.Error())
		} else if renderedText := r.Extract(rendered, url); len(renderedText) > len(text) {
			text = renderedText
		}
	}

	if html != "" && text == "" {
		warnings = append(warnings, "Parsed page does not contain text content.")
	}
	return text, warnings
}

var companyNameStrip = regexp.MustCompile(`[^a-zA-Z0-9_\s-]`)
var companyNameSeparators = regexp.MustCompile(`[-\s]+`)

// SanitizeCompanyName converts a company name into a filesystem-safe
// directory name.
func SanitizeCompanyName(name string) string {
	safe := companyNameStrip.ReplaceAllString(name, "")
	safe = companyNameSeparators.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}
