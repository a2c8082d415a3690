package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-keywords/internal/config"
	"github.com/jonathan/resume-keywords/internal/latex"
	"github.com/jonathan/resume-keywords/internal/observability"
	"github.com/jonathan/resume-keywords/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Inject missing job-posting keywords into a LaTeX resume",
	Long: `Fetches or reads a job description, ranks its keywords, finds the ones
absent from the resume, and writes an updated copy with the missing keywords
hidden in a white-text block before \end{document}.`,
	RunE: runProcess,
}

var (
	processResume  string
	processJobURL  string
	processJobPath string
	processCompany string
	processTarget  int
	processOutput  string
	processUseAI   bool
	processBrowser bool
	processVerbose bool
	processCompile bool
)

func init() {
	processCmd.Flags().StringVarP(&processResume, "resume", "r", "", "Path to the LaTeX resume (required)")
	processCmd.Flags().StringVar(&processJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	processCmd.Flags().StringVarP(&processJobPath, "job", "j", "", "Path to a job description text file (mutually exclusive with --job-url)")
	processCmd.Flags().StringVarP(&processCompany, "company", "c", "", "Company name, used for the output directory")
	processCmd.Flags().IntVarP(&processTarget, "keywords", "k", 0, "Number of keywords to inject (default 20, max 60)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output path (defaults to <output-dir>/<company>/resume.tex)")
	processCmd.Flags().BoolVar(&processUseAI, "use-ai", false, "Augment heuristic keywords with Gemini (requires GEMINI_API_KEY)")
	processCmd.Flags().BoolVar(&processBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print detailed debug information")
	processCmd.Flags().BoolVar(&processCompile, "compile", false, "Compile the updated resume to PDF with pdflatex")

	_ = processCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if processJobURL == "" && processJobPath == "" {
		return fmt.Errorf("either --job-url or --job is required")
	}

	raw, err := os.ReadFile(processResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	resumeContent, warnings := latex.DecodeText(raw)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	jobDescription := ""
	if processJobPath != "" {
		jobRaw, err := os.ReadFile(processJobPath)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobDescription = string(jobRaw)
	}

	cfg := config.FromEnv()
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = processBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = processVerbose
	}

	runner := pipeline.New(cfg)
	result, err := runner.Run(ctx, pipeline.Input{
		ResumeContent:  resumeContent,
		JobURL:         processJobURL,
		JobDescription: jobDescription,
		KeywordTarget:  processTarget,
		UseAI:          processUseAI,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintJobText(result, processJobURL)
		printer.PrintKeywords(result)
	} else {
		if result.ScrapedFromURL {
			fmt.Printf("Scraped %d characters of job text from %s\n", len(result.JobText), processJobURL)
		}
		fmt.Printf("Keyword candidates: %s\n", strings.Join(result.Candidates, ", "))
		if result.AIEnabled {
			fmt.Printf("AI keywords: %s\n", strings.Join(result.AIKeywords, ", "))
		}
	}
	if len(result.MissingKeywords) == 0 {
		fmt.Println("Resume already covers every candidate keyword; nothing to inject.")
	} else {
		fmt.Printf("Injecting %d missing keywords: %s\n",
			len(result.MissingKeywords), strings.Join(result.MissingKeywords, ", "))
	}

	outputPath, err := resolveOutputPath(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(result.UpdatedResume), 0644); err != nil {
		return fmt.Errorf("failed to write updated resume: %w", err)
	}
	fmt.Printf("Wrote %s\n", outputPath)

	if processCompile {
		pdfPath, _, err := latex.Compile(ctx, result.UpdatedResume, filepath.Dir(outputPath))
		if err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}
		defer func() { _ = latex.CleanupArtifacts(filepath.Dir(outputPath)) }()
		fmt.Printf("Compiled %s\n", pdfPath)
	}

	return nil
}

// resolveOutputPath picks --output when given, otherwise a per-company
// directory under the configured output root.
func resolveOutputPath(cfg config.Config) (string, error) {
	if processOutput != "" {
		return processOutput, nil
	}
	safe := pipeline.SanitizeCompanyName(processCompany)
	if safe == "" {
		base := filepath.Base(processResume)
		return filepath.Join(cfg.OutputDir, strings.TrimSuffix(base, filepath.Ext(base))+"_updated.tex"), nil
	}
	return filepath.Join(cfg.OutputDir, safe, "resume.tex"), nil
}
