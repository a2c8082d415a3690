package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-keywords/internal/pipeline"
)

const testResume = `\documentclass{article}
\usepackage{xcolor}
\begin{document}
Engineer with Go and PostgreSQL experience.
\end{document}
`

func newTestRunner() *pipeline.Runner {
	return &pipeline.Runner{
		FetchHTML: func(ctx context.Context, url string) (string, error) {
			return "<html><body>job page</body></html>", nil
		},
		Extract: func(html, url string) string {
			return "Requirements: kubernetes kubernetes terraform terraform"
		},
		Augment: func(ctx context.Context, jobText, resumeText string, max int) []string {
			return nil
		},
		Now: func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		runner:    newTestRunner(),
		outputDir: t.TempDir(),
	}
}

// multipartBody builds a multipart form from fields plus an optional resume
// file attachment.
func multipartBody(t *testing.T, fields map[string]string, resumeFile []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if resumeFile != nil {
		part, err := writer.CreateFormFile("resume", "resume.tex")
		require.NoError(t, err)
		_, err = part.Write(resumeFile)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProcess_PastedResumeAndDescription(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartBody(t, map[string]string{
		"company_name":    "Acme Corp",
		"job_description": "We need kubernetes kubernetes and terraform.",
		"resume_content":  testResume,
	}, nil)

	req := httptest.NewRequest("POST", "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Acme Corp", resp.Company)
	assert.Contains(t, resp.MissingKeywords, "kubernetes")
	assert.True(t, resp.Modified)
	require.NotEmpty(t, resp.OutputPath)
	assert.Contains(t, resp.OutputPath, "Acme_Corp")

	saved, err := os.ReadFile(resp.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, resp.UpdatedResume, string(saved))
}

func TestProcess_UploadedFileWithLatin1Fallback(t *testing.T) {
	s := newTestServer(t)
	latin1 := []byte("\\documentclass{article}\n\\begin{document}\nr\xe9sum\xe9\n\\end{document}\n")
	body, contentType := multipartBody(t, map[string]string{
		"company_name":    "Acme",
		"job_description": "kubernetes kubernetes",
	}, latin1)

	req := httptest.NewRequest("POST", "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.UpdatedResume, "résumé")

	found := false
	for _, w := range resp.Warnings {
		if strings.Contains(w, "latin-1") {
			found = true
		}
	}
	assert.True(t, found, "expected a latin-1 decode warning, got %v", resp.Warnings)
}

func TestProcess_MissingCompanyName(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartBody(t, map[string]string{
		"job_description": "kubernetes",
		"resume_content":  testResume,
	}, nil)

	req := httptest.NewRequest("POST", "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcess_MissingResume(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartBody(t, map[string]string{
		"company_name":    "Acme",
		"job_description": "kubernetes",
	}, nil)

	req := httptest.NewRequest("POST", "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "resume")
}

func TestProcess_NoJobText(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartBody(t, map[string]string{
		"company_name":   "Acme",
		"resume_content": testResume,
	}, nil)

	req := httptest.NewRequest("POST", "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "job description")
}

func TestProcess_InvalidKeywordTarget(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartBody(t, map[string]string{
		"company_name":    "Acme",
		"job_description": "kubernetes",
		"resume_content":  testResume,
		"keyword_target":  "lots",
	}, nil)

	req := httptest.NewRequest("POST", "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "keyword_target")
}

func TestCompile_MissingContent(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/compile", strings.NewReader(`{"company_name":"Acme"}`))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompile_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/compile", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunsEndpointsAbsentWithoutDatabase(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/runs", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	handler := s.withCORS(s.routes())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/process", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
