package server

import (
	"github.com/go-playground/validator/v10"
)

// ProcessRequest carries the multipart form fields of POST /api/process.
// The resume itself arrives either as an uploaded file or as the
// resume_content field.
type ProcessRequest struct {
	CompanyName    string `json:"company_name" validate:"required,min=1"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
	JobDescription string `json:"job_description,omitempty"`
	KeywordTarget  int    `json:"keyword_target,omitempty" validate:"omitempty,min=1,max=60"`
	UseAI          bool   `json:"use_ai,omitempty"`
}

// Validate validates the ProcessRequest using the validator.
func (r *ProcessRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CompileRequest represents the request body for /api/compile.
type CompileRequest struct {
	LatexContent string `json:"latex_content" validate:"required"`
	CompanyName  string `json:"company_name,omitempty"`
}

// Validate validates the CompileRequest using the validator.
func (r *CompileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TokenRequest represents the login request for /api/token.
type TokenRequest struct {
	Password string `json:"password" validate:"required"`
}

// Validate validates the TokenRequest using the validator.
func (r *TokenRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ProcessResponse represents the response for /api/process.
type ProcessResponse struct {
	RunID           string   `json:"run_id,omitempty"`
	Company         string   `json:"company"`
	ScrapedFromURL  bool     `json:"scraped_from_url"`
	Keywords        []string `json:"keywords"`
	AIKeywords      []string `json:"ai_keywords,omitempty"`
	AIEnabled       bool     `json:"ai_enabled"`
	MissingKeywords []string `json:"missing_keywords"`
	WhiteBlock      string   `json:"white_block,omitempty"`
	UpdatedResume   string   `json:"updated_resume"`
	Modified        bool     `json:"modified"`
	OutputPath      string   `json:"output_path,omitempty"`
	Warnings        []string `json:"warnings"`
}

// ListRunsResponse represents the response for GET /api/runs.
type ListRunsResponse struct {
	Runs  any `json:"runs"`
	Total int `json:"total"`
}
