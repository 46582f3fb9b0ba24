package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"judge_gateway/internal/app/service"
	"judge_gateway/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(qs *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: qs}
}

// RegisterRoutes mounts the admin-only question management surface.
func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/displayQuestions", h.displayQuestions)
	r.Get("/displayUploadedQuestions", h.displayUploadedQuestions)
	r.Post("/addQuestion", h.addQuestion)
	r.Post("/updateQuestion", h.updateQuestion)
	r.Post("/deleteQuestion", h.deleteQuestion)
	r.Post("/listTestCase", h.listTestCase)
	r.Post("/addTestCase", h.addTestCase)
	r.Post("/updateTestCase", h.updateTestCase)
}

func (h *QuestionHandler) displayQuestions(w http.ResponseWriter, r *http.Request) {
	raw, err := h.questionService.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithRawJSON(w, http.StatusOK, raw)
}

func (h *QuestionHandler) displayUploadedQuestions(w http.ResponseWriter, r *http.Request) {
	uploaded, err := h.questionService.ListUploaded(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, uploaded)
}

func (h *QuestionHandler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	raw, err := h.questionService.Add(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithRawJSON(w, http.StatusOK, raw)
}

func (h *QuestionHandler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	raw, err := h.questionService.Update(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithRawJSON(w, http.StatusOK, raw)
}

func (h *QuestionHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.DeleteQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	raw, err := h.questionService.Delete(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithRawJSON(w, http.StatusOK, raw)
}

func (h *QuestionHandler) listTestCase(w http.ResponseWriter, r *http.Request) {
	h.testCaseOp(w, r, h.questionService.ListTestCases)
}

func (h *QuestionHandler) addTestCase(w http.ResponseWriter, r *http.Request) {
	h.testCaseOp(w, r, h.questionService.AddTestCase)
}

func (h *QuestionHandler) updateTestCase(w http.ResponseWriter, r *http.Request) {
	h.testCaseOp(w, r, h.questionService.UpdateTestCase)
}

func (h *QuestionHandler) testCaseOp(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, req service.TestCaseRequest) (json.RawMessage, error),
) {
	var req service.TestCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	raw, err := op(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithRawJSON(w, http.StatusOK, raw)
}
