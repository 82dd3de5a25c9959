package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/muhammadheryan/patient-registration/constant"
	"github.com/muhammadheryan/patient-registration/model"
	cerr "github.com/muhammadheryan/patient-registration/utils/errors"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[writeJSON] err encode response", zap.Error(err))
	}
}

func writeSuccess(w http.ResponseWriter, status int, body any) {
	writeJSON(w, status, body)
}

// writeError renders err as an ErrorResponse. Anything that is not a
// CustomError is reported as an internal error.
func writeError(w http.ResponseWriter, err error) {
	var customErr cerr.CustomError
	if !errors.As(err, &customErr) {
		customErr = cerr.SetCustomError(constant.ErrInternal)
	}

	writeJSON(w, customErr.ErrorHTTPCode(), model.ErrorResponse{
		Success: false,
		Error:   customErr.Error(),
		Code:    customErr.ErrorCode(),
	})
}
