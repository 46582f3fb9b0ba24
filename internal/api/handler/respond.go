package handler

import (
	"errors"
	"net/http"

	"judge_gateway/internal/common"
	"judge_gateway/internal/platform/judge"
)

// respondServiceError maps service errors to HTTP responses. Judge
// failures pass the upstream payload through uninterpreted.
func respondServiceError(w http.ResponseWriter, err error) {
	var apiErr *judge.APIError
	if errors.As(err, &apiErr) {
		common.RespondWithRawJSON(w, http.StatusBadRequest, apiErr.Body)
		return
	}
	common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
}
