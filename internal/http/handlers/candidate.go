package handlers

import (
	"net/http"

	"github.com/Pankajnegi356/recruitment-portal/internal/app"
	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/activity"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/application"
	"github.com/Pankajnegi356/recruitment-portal/internal/http/response"
)

type CandidateHandler struct {
	candidates   *app.CandidateService
	activity     activity.Repository
	applications application.Repository
}

func NewCandidateHandler(candidates *app.CandidateService, activityLog activity.Repository, applications application.Repository) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, activity: activityLog, applications: applications}
}

func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	detail, err := h.candidates.Detail(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, detail)
}

type candidateStatusRequest struct {
	Status *int `json:"status"`
}

func (h *CandidateHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req candidateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == nil {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.candidates.AdvanceStatus(r.Context(), id, *req.Status, actorFrom(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CandidateHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.candidates.Reject(r.Context(), id, actorFrom(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type testScoreRequest struct {
	TestScore *float64 `json:"test_score"`
}

func (h *CandidateHandler) RecordTestScore(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req testScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.TestScore == nil {
		response.Error(w, common.NewError(common.CodeValidation, "test_score is required", nil))
		return
	}
	created, err := h.candidates.RecordTestScore(r.Context(), id, *req.TestScore, actorFrom(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

type interviewRatingRequest struct {
	Rating *float64 `json:"rating"`
}

func (h *CandidateHandler) RecordInterview(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req interviewRatingRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Rating == nil {
		response.Error(w, common.NewError(common.CodeValidation, "rating is required", nil))
		return
	}
	created, err := h.candidates.RecordInterview(r.Context(), id, *req.Rating, actorFrom(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CandidateHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	entries, err := h.activity.ListByEntity(r.Context(), "candidate", id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, entries)
}

func (h *CandidateHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.ListByCandidate(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
