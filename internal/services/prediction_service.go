package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/known/structpb"

	"prediction-proxy/internal/adapters/prediction"
)

// predictionService implements the PredictionService interface
type predictionService struct {
	predictor prediction.Predictor
	timeout   time.Duration
	logger    *logrus.Logger
}

// NewPredictionService creates a new prediction service instance.
// A zero timeout leaves the deadline to the caller's context.
func NewPredictionService(predictor prediction.Predictor, timeout time.Duration, logger *logrus.Logger) PredictionService {
	if logger == nil {
		logger = logrus.New()
	}

	return &predictionService{
		predictor: predictor,
		timeout:   timeout,
		logger:    logger,
	}
}

// Predict parses the payload, sends it as a one-instance batch and serializes the predictions
func (s *predictionService) Predict(ctx context.Context, payload []byte) (*PredictionResult, error) {
	instance, err := prediction.DecodeInstance(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	fields := logrus.Fields{
		"endpoint":  s.predictor.Endpoint(),
		"instances": 1,
	}

	start := time.Now()
	resp, err := s.predictor.Predict(ctx, &prediction.PredictRequest{
		Instances: []*structpb.Value{instance},
	})
	fields["latency_ms"] = float64(time.Since(start).Nanoseconds()) / 1000000

	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Prediction failed")
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}

	body, err := prediction.EncodePredictions(resp.Predictions)
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Prediction output not serializable")
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrediction, err)
	}

	fields["predictions"] = len(resp.Predictions)
	fields["deployed_model_id"] = resp.DeployedModelID
	s.logger.WithFields(fields).Debug("Prediction completed")

	return &PredictionResult{
		Body:            body,
		Predictions:     len(resp.Predictions),
		DeployedModelID: resp.DeployedModelID,
		Model:           resp.Model,
	}, nil
}

// Endpoint returns the resource name of the remote endpoint
func (s *predictionService) Endpoint() string {
	return s.predictor.Endpoint()
}
