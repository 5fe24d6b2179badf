package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"prediction-proxy/internal/services"
	"prediction-proxy/pkg/lambda"
)

// MethodNotAllowedMessage is the body returned for anything but POST
const MethodNotAllowedMessage = "Send a POST request"

// DeployedModelHeader reports which deployed model served the prediction
const DeployedModelHeader = "X-Deployed-Model-Id"

// ModelHeader reports the model resource behind the deployed model
const ModelHeader = "X-Model"

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// PredictionHandler handles prediction HTTP requests
type PredictionHandler struct {
	predictionService services.PredictionService
	logger            *logrus.Logger
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionService services.PredictionService, logger *logrus.Logger) *PredictionHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &PredictionHandler{
		predictionService: predictionService,
		logger:            logger,
	}
}

// @Summary Run an online prediction
// @Description Forwards the JSON body as a single instance to the prediction endpoint and returns its predictions
// @Tags predictions
// @Accept json
// @Produce json
// @Param instance body object true "Prediction instance, any JSON value"
// @Success 200 {array} object
// @Failure 400 {object} ErrorResponse
// @Failure 405 {string} string "Send a POST request"
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /predict [post]
func (h *PredictionHandler) Predict(c *gin.Context) {
	var body []byte
	if c.Request.Method == http.MethodPost {
		var err error
		body, err = c.GetRawData()
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid request body",
				Message: err.Error(),
			})
			return
		}
	}

	resp, err := h.process(c.Request.Context(), c.Request.Method, body)
	if err != nil {
		_ = c.Error(err)
	}

	for k, v := range resp.Headers {
		if k != "Content-Type" {
			c.Header(k, v)
		}
	}
	c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
}

// HandlePredict is the serverless counterpart of Predict
func (h *PredictionHandler) HandlePredict(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	resp, err := h.process(ctx, req.Method, req.Body)
	if req.RequestID != "" {
		resp.Headers[lambda.RequestIDHeader] = req.RequestID
	}
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id":  req.RequestID,
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}).WithError(err).Warn("Prediction request failed")
	}
	return resp, nil
}

// process runs one request and always returns a response; err is the failure behind a non-2xx response
func (h *PredictionHandler) process(ctx context.Context, method string, body []byte) (*lambda.Response, error) {
	if method != http.MethodPost {
		return &lambda.Response{
			StatusCode: http.StatusMethodNotAllowed,
			Headers: map[string]string{
				"Content-Type": contentTypeText,
				"Allow":        http.MethodPost,
			},
			Body: []byte(MethodNotAllowedMessage),
		}, nil
	}

	result, err := h.predictionService.Predict(ctx, body)
	if err != nil {
		return errorResponse(err), err
	}

	headers := map[string]string{"Content-Type": contentTypeJSON}
	if result.DeployedModelID != "" {
		headers[DeployedModelHeader] = result.DeployedModelID
	}
	if result.Model != "" {
		headers[ModelHeader] = result.Model
	}

	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       result.Body,
	}, nil
}

func errorResponse(err error) *lambda.Response {
	status, summary := errorStatus(err)

	body, marshalErr := json.Marshal(ErrorResponse{Error: summary, Message: err.Error()})
	if marshalErr != nil {
		body = []byte(`{"error": "Internal server error"}`)
	}

	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       body,
	}
}
