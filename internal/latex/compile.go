package latex

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilationTimeout is the maximum time to wait for pdflatex.
const CompilationTimeout = 30 * time.Second

// CompileError represents a LaTeX compilation failure.
type CompileError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("latex compile error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("latex compile error: %s", e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Cause
}

// Compile writes source to a .tex file and runs pdflatex over it, returning
// the path of the generated PDF and the combined compiler log. The compiler
// runs twice so cross-references and layout settle. workDir may be empty, in
// which case a temporary directory is created (the caller owns cleanup via
// the returned path's directory).
func Compile(ctx context.Context, source string, workDir string) (pdfPath string, logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", "", &CompileError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	if workDir == "" {
		workDir, err = os.MkdirTemp("", "latex-compile-*")
		if err != nil {
			return "", "", &CompileError{Message: "failed to create temporary working directory", Cause: err}
		}
	} else {
		if err := os.MkdirAll(workDir, 0755); err != nil {
			return "", "", &CompileError{Message: fmt.Sprintf("failed to create working directory: %s", workDir), Cause: err}
		}
	}

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(source), 0644); err != nil {
		return "", "", &CompileError{Message: "failed to write LaTeX source", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	var runErr error
	var stdout, stderr strings.Builder
	for i := 0; i < 2; i++ {
		stdout.Reset()
		stderr.Reset()
		cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, texPath)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		runErr = cmd.Run()
	}
	logOutput = stdout.String() + stderr.String()

	pdfPath = filepath.Join(workDir, "resume.pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return "", logOutput, &CompileError{
			Message:   "LaTeX compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex can exit non-zero and still emit a usable PDF; treat that as
	// a partial success the caller can inspect via the log.
	if runErr != nil {
		return pdfPath, logOutput, &CompileError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdfPath, logOutput, nil
}

// CleanupArtifacts removes a temporary compile directory created by Compile.
func CleanupArtifacts(workDir string) error {
	if workDir == "" {
		return nil
	}
	if strings.Contains(workDir, "latex-compile-") {
		return os.RemoveAll(workDir)
	}
	for _, ext := range []string{".aux", ".log", ".out", ".toc"} {
		_ = os.Remove(filepath.Join(workDir, "resume"+ext))
	}
	return nil
}
