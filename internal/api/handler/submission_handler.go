package handler

import (
	"encoding/json"
	"net/http"

	"judge_gateway/internal/api/middleware"
	"judge_gateway/internal/app/service"
	"judge_gateway/internal/common"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(ss *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

// RegisterRoutes mounts the authenticated submission surface.
func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/submission", h.submit)
	r.Get("/listSelfSubmissions", h.listSelf)
}

// RegisterAdminRoutes mounts the admin-only listing surface.
func (h *SubmissionHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/listAllSubmissions", h.listAll)
	r.Post("/listUserSubmissions", h.listByUser)
	r.Post("/listQuestionSubmissions", h.listByProblem)
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.submissionService.Submit(r.Context(), identity.Email, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (h *SubmissionHandler) listSelf(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	submissions, err := h.submissionService.ListByUser(r.Context(), identity.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) listAll(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionService.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) listByUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	submissions, err := h.submissionService.ListByUser(r.Context(), req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) listByProblem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProblemID string `json:"problemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	submissions, err := h.submissionService.ListByProblem(r.Context(), req.ProblemID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}
