package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-keywords/internal/db"
	"github.com/jonathan/resume-keywords/internal/latex"
	"github.com/jonathan/resume-keywords/internal/pipeline"
)

// maxUploadSize caps the multipart form size for /api/process.
const maxUploadSize = 8 << 20 // 8 MiB

// handleToken exchanges the admin password for a bearer token
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := s.auth.IssueToken(req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// handleProcess runs the keyword pipeline over an uploaded resume
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := ProcessRequest{
		CompanyName:    r.FormValue("company_name"),
		JobURL:         r.FormValue("job_url"),
		JobDescription: r.FormValue("job_description"),
		UseAI:          parseBool(r.FormValue("use_ai")),
	}
	if v := r.FormValue("keyword_target"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "keyword_target must be a number")
			return
		}
		req.KeywordTarget = n
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resumeContent, warnings, err := s.resumeFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.Input{
		ResumeContent:  resumeContent,
		JobURL:         req.JobURL,
		JobDescription: req.JobDescription,
		KeywordTarget:  req.KeywordTarget,
		UseAI:          req.UseAI,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrNoJobText) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "processing failed: "+err.Error())
		return
	}

	resp := ProcessResponse{
		Company:         req.CompanyName,
		ScrapedFromURL:  result.ScrapedFromURL,
		Keywords:        result.Candidates,
		AIKeywords:      result.AIKeywords,
		AIEnabled:       result.AIEnabled,
		MissingKeywords: result.MissingKeywords,
		WhiteBlock:      result.WhiteBlock,
		UpdatedResume:   result.UpdatedResume,
		Modified:        result.Modified,
		Warnings:        append(warnings, result.Warnings...),
	}

	if path, err := s.saveResume(req.CompanyName, result.UpdatedResume); err != nil {
		resp.Warnings = append(resp.Warnings, "Failed to save resume: "+err.Error())
	} else {
		resp.OutputPath = path
	}

	if s.database != nil {
		id, err := s.database.SaveRun(r.Context(), &db.Run{
			Company:         req.CompanyName,
			JobURL:          req.JobURL,
			ScrapedFromURL:  result.ScrapedFromURL,
			Keywords:        result.Candidates,
			MissingKeywords: result.MissingKeywords,
			Warnings:        resp.Warnings,
		})
		if err != nil {
			log.Printf("[server] failed to record run: %v", err)
		} else {
			resp.RunID = id.String()
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// resumeFromRequest pulls the resume source from the uploaded file or the
// resume_content form field, decoding it as UTF-8 with a latin-1 fallback.
func (s *Server) resumeFromRequest(r *http.Request) (string, []string, error) {
	file, header, err := r.FormFile("resume")
	if err == nil {
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", nil, errors.New("failed to read uploaded resume: " + err.Error())
		}
		if len(raw) == 0 {
			return "", nil, errors.New("uploaded resume file is empty: " + header.Filename)
		}
		content, warnings := latex.DecodeText(raw)
		return content, warnings, nil
	}

	if content := r.FormValue("resume_content"); content != "" {
		return content, nil, nil
	}
	return "", nil, errors.New("provide a resume file upload or resume_content")
}

// saveResume writes the updated resume under the per-company output directory.
func (s *Server) saveResume(company, content string) (string, error) {
	safe := pipeline.SanitizeCompanyName(company)
	if safe == "" {
		safe = "resume"
	}
	dir := filepath.Join(s.outputDir, safe)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "resume.tex")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// handleCompile compiles LaTeX source and streams back the PDF
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pdfPath, logOutput, err := latex.Compile(r.Context(), req.LatexContent, "")
	if pdfPath != "" {
		defer func() {
			if cleanupErr := latex.CleanupArtifacts(filepath.Dir(pdfPath)); cleanupErr != nil {
				log.Printf("[server] compile cleanup failed: %v", cleanupErr)
			}
		}()
	}
	if err != nil && pdfPath == "" {
		var compileErr *latex.CompileError
		if errors.As(err, &compileErr) && compileErr.LogOutput != "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": compileErr.Message,
				"log":   truncateLog(logOutput),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pdf, readErr := os.ReadFile(pdfPath)
	if readErr != nil {
		writeError(w, http.StatusInternalServerError, "failed to read generated PDF: "+readErr.Error())
		return
	}

	filename := "resume.pdf"
	if safe := pipeline.SanitizeCompanyName(req.CompanyName); safe != "" {
		filename = safe + ".pdf"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("[server] failed to write PDF response: %v", err)
	}
}

// handleListRuns returns recorded runs, newest first
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
	offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

	runs, total, err := s.database.ListRuns(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list runs: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ListRunsResponse{Runs: runs, Total: total})
}

// handleGetRun returns one recorded run by ID
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	run, err := s.database.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get run: "+err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func parseIntDefault(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// truncateLog keeps error payloads reasonable; pdflatex logs run long.
func truncateLog(logOutput string) string {
	const maxLogLength = 4000
	if len(logOutput) > maxLogLength {
		return logOutput[len(logOutput)-maxLogLength:]
	}
	return logOutput
}
