package handlers

import (
	"errors"
	"net/http"

	"prediction-proxy/internal/adapters/prediction"
	"prediction-proxy/internal/services"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorStatus maps a prediction failure to an HTTP status and a short description.
// Client faults map to 4xx, endpoint faults to 5xx.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidPayload):
		return http.StatusBadRequest, "Invalid request body"
	case prediction.IsClientFault(err):
		return http.StatusBadRequest, "Prediction instance rejected"
	case prediction.IsTimeout(err):
		return http.StatusGatewayTimeout, "Prediction timed out"
	case prediction.IsUnavailable(err), errors.Is(err, prediction.ErrClosed):
		return http.StatusServiceUnavailable, "Prediction endpoint unavailable"
	case errors.Is(err, prediction.ErrUnauthorized):
		return http.StatusBadGateway, "Prediction endpoint refused credentials"
	case errors.Is(err, prediction.ErrEndpointNotFound):
		return http.StatusBadGateway, "Prediction endpoint not found"
	case errors.Is(err, services.ErrInvalidPrediction):
		return http.StatusBadGateway, "Invalid prediction output"
	case isPredictionError(err):
		return http.StatusBadGateway, "Prediction failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func isPredictionError(err error) bool {
	var predErr *prediction.PredictionError
	return errors.As(err, &predErr)
}
