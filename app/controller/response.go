package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"tienda-admin/orderbuilder"
	"tienda-admin/repository"
	"tienda-admin/service"
	"tienda-admin/variants"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into v. An empty body fails with an error wrapping io.EOF.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("❌ writeJSON: failed to encode response", zap.Error(err))
	}
}

// statusFor maps domain errors to HTTP status codes. Order matters: a stock conflict
// surfaced during submission is still a conflict, not a gateway failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, variants.ErrDuplicateGroup),
		errors.Is(err, variants.ErrDuplicateValue),
		errors.Is(err, orderbuilder.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, service.ErrSubmissionFailed):
		return http.StatusBadGateway
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrNoImage):
		return http.StatusNotFound
	case errors.Is(err, variants.ErrEmptyName),
		errors.Is(err, variants.ErrGroupNotFound),
		errors.Is(err, variants.ErrNegativeStock),
		errors.Is(err, variants.ErrCombinationNotFound),
		errors.Is(err, variants.ErrUnknownEvent),
		errors.Is(err, orderbuilder.ErrEmptySelection),
		errors.Is(err, orderbuilder.ErrInvalidQuantity),
		errors.Is(err, orderbuilder.ErrUnknownVariant),
		errors.Is(err, orderbuilder.ErrMissingRequiredField),
		errors.Is(err, service.ErrInvalidImageSize):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPricingUnavailable),
		errors.Is(err, service.ErrImagesUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError logs the failure and answers with a plain-text body
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zap.L().Error("❌ "+op+": request failed", zap.Int("status", status), zap.Error(err))
	} else {
		zap.L().Warn("❌ "+op+": request rejected", zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}

func logRequest(op string, r *http.Request) {
	zap.L().Info(fmt.Sprintf("📥 %s: Received %s request to %s", op, r.Method, r.URL.Path))
}
