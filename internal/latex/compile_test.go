package latex

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_MinimalDocument(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed, skipping compilation test")
	}

	source := `\documentclass{article}
\begin{document}
Hello
\end{document}
`
	workDir := t.TempDir()
	pdfPath, logOutput, err := Compile(context.Background(), source, workDir)

	require.NoError(t, err, "log: %s", logOutput)
	assert.FileExists(t, pdfPath)
}

func TestCompile_InvalidSourceFails(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed, skipping compilation test")
	}

	_, _, err := Compile(context.Background(), `\begin{document} no documentclass`, t.TempDir())

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
}

func TestCompileError_Message(t *testing.T) {
	err := &CompileError{Message: "PDF was not generated"}

	assert.Contains(t, err.Error(), "PDF was not generated")
	assert.Nil(t, err.Unwrap())
}
