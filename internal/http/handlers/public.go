package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/app"
	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
	"github.com/Pankajnegi356/recruitment-portal/internal/http/middleware"
	"github.com/Pankajnegi356/recruitment-portal/internal/http/response"
	"github.com/Pankajnegi356/recruitment-portal/internal/integration/mailer"
)

const maxResumeBytes = 5 << 20

var resumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type ApplyHandler struct {
	intake    *app.IntakeService
	limiter   middleware.Limiter
	rateLimit int
	rateWin   time.Duration
}

func NewApplyHandler(intake *app.IntakeService, limiter middleware.Limiter, rateLimit int, rateWindow time.Duration) *ApplyHandler {
	return &ApplyHandler{intake: intake, limiter: limiter, rateLimit: rateLimit, rateWin: rateWindow}
}

type publicJobView struct {
	Title           string   `json:"title"`
	Department      string   `json:"department"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Location        string   `json:"location"`
	EmploymentType  string   `json:"employment_type"`
	ExperienceLevel string   `json:"experience_level"`
	SalaryRange     string   `json:"salary_range"`
}

// Get serves the posting behind a share link so the application form can
// render it. The numeric suffix of the code is ignored during resolution.
func (h *ApplyHandler) Get(w http.ResponseWriter, r *http.Request) {
	code, err := slugFromPath(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	posting, err := h.intake.GetJobBySlug(r.Context(), code)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, publicView(posting))
}

// Apply accepts a public submission: multipart form with name, email, phone,
// resume_url and an optional resume file.
func (h *ApplyHandler) Apply(w http.ResponseWriter, r *http.Request) {
	code, err := slugFromPath(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + code + ":" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, h.rateLimit, h.rateWin) {
			response.Error(w, common.NewError(common.CodeRateLimited, "too many applications, try again later", nil))
			return
		}
	}
	in, err := parseSubmission(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	in.Slug = code
	result, err := h.intake.SubmitApplication(r.Context(), *in)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, result)
}

func slugFromPath(r *http.Request) (string, error) {
	code := strings.Trim(strings.TrimPrefix(r.URL.Path, "/apply/"), "/")
	if code == "" || strings.Contains(code, "/") {
		return "", common.NewError(common.CodeValidation, "invalid application code", nil)
	}
	return code, nil
}

func parseSubmission(r *http.Request) (*app.SubmitInput, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
			return nil, common.NewError(common.CodeValidation, "invalid multipart form", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, common.NewError(common.CodeValidation, "invalid form", err)
	}
	in := &app.SubmitInput{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		ResumeURL: r.FormValue("resume_url"),
	}
	attachment, err := resumeFromForm(r)
	if err != nil {
		return nil, err
	}
	in.Resume = attachment
	return in, nil
}

func resumeFromForm(r *http.Request) (*mailer.Attachment, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, common.NewError(common.CodeValidation, "invalid resume upload", err)
	}
	defer file.Close()
	if header.Size > maxResumeBytes {
		return nil, common.NewValidationError("invalid resume upload", map[string]string{"resume": "resume must be 5MB or smaller"})
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := resumeContentTypes[ext]
	if !ok {
		return nil, common.NewValidationError("invalid resume upload", map[string]string{"resume": "resume must be a pdf, doc, or docx file"})
	}
	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		return nil, common.NewError(common.CodeValidation, "invalid resume upload", err)
	}
	if len(data) > maxResumeBytes {
		return nil, common.NewValidationError("invalid resume upload", map[string]string{"resume": "resume must be 5MB or smaller"})
	}
	return &mailer.Attachment{Filename: header.Filename, ContentType: contentType, Data: data}, nil
}

func publicView(j *job.Job) publicJobView {
	return publicJobView{
		Title:           j.Title,
		Department:      j.Department,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Location:        j.Location,
		EmploymentType:  j.EmploymentType,
		ExperienceLevel: j.ExperienceLevel,
		SalaryRange:     j.SalaryRange,
	}
}
