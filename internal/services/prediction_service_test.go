package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/types/known/structpb"

	"prediction-proxy/internal/adapters/prediction"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func mustValues(t *testing.T, data string) []*structpb.Value {
	t.Helper()
	values, err := prediction.DecodeValues([]byte(data))
	require.NoError(t, err)
	return values
}

// slowPredictor blocks until the context is done
type slowPredictor struct{}

func (slowPredictor) Predict(ctx context.Context, req *prediction.PredictRequest) (*prediction.PredictResponse, error) {
	<-ctx.Done()
	return nil, prediction.FromRemote("Predict", "slow", ctx.Err())
}

func (slowPredictor) Endpoint() string { return "slow" }
func (slowPredictor) Close() error     { return nil }

func TestPredictionService(t *testing.T) {
	ctx := context.Background()

	t.Run("SingleInstanceBatch", func(t *testing.T) {
		mock := prediction.NewMockPredictor(mustValues(t, `[0.5]`)...)
		svc := NewPredictionService(mock, 0, quietLogger())

		_, err := svc.Predict(ctx, []byte(`{"values": [1, 2, 3]}`))
		require.NoError(t, err)

		calls := mock.Calls()
		require.Len(t, calls, 1)
		require.Len(t, calls[0].Instances, 1)
		assert.Equal(t,
			map[string]interface{}{"values": []interface{}{1.0, 2.0, 3.0}},
			calls[0].Instances[0].AsInterface())
	})

	t.Run("CannedNumbers", func(t *testing.T) {
		mock := prediction.NewMockPredictor(mustValues(t, `[0.87, 0.13]`)...)
		svc := NewPredictionService(mock, 0, quietLogger())

		result, err := svc.Predict(ctx, []byte(`{"x": 1}`))
		require.NoError(t, err)
		assert.JSONEq(t, `[0.87, 0.13]`, string(result.Body))
		assert.Equal(t, 2, result.Predictions)
		assert.Equal(t, "mock-model", result.DeployedModelID)
	})

	t.Run("EndToEndScenario", func(t *testing.T) {
		mock := prediction.NewMockPredictor(mustValues(t, `[{"label": "A", "score": 0.9}]`)...)
		svc := NewPredictionService(mock, 0, quietLogger())

		result, err := svc.Predict(ctx, []byte(`{"values": [1, 2, 3]}`))
		require.NoError(t, err)
		assert.JSONEq(t, `[{"label": "A", "score": 0.9}]`, string(result.Body))
	})

	t.Run("Idempotent", func(t *testing.T) {
		mock := prediction.NewMockPredictor(mustValues(t, `[{"label": "A", "score": 0.9}, 3, "z"]`)...)
		svc := NewPredictionService(mock, 0, quietLogger())

		first, err := svc.Predict(ctx, []byte(`{"values": [1, 2, 3]}`))
		require.NoError(t, err)
		second, err := svc.Predict(ctx, []byte(`{"values": [1, 2, 3]}`))
		require.NoError(t, err)

		assert.Equal(t, string(first.Body), string(second.Body))
		assert.Equal(t, 2, mock.CallCount())
	})

	t.Run("NonObjectPayloads", func(t *testing.T) {
		mock := prediction.NewMockPredictor()
		svc := NewPredictionService(mock, 0, quietLogger())

		for _, payload := range []string{`[1, 2]`, `"text"`, `7`, `null`} {
			result, err := svc.Predict(ctx, []byte(payload))
			require.NoError(t, err, payload)
			assert.JSONEq(t, "["+payload+"]", string(result.Body), payload)
		}
	})

	t.Run("InvalidPayloadSkipsRemote", func(t *testing.T) {
		mock := prediction.NewMockPredictor()
		svc := NewPredictionService(mock, 0, quietLogger())

		_, err := svc.Predict(ctx, []byte(`not json`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidPayload))
		assert.Zero(t, mock.CallCount())
	})

	t.Run("RemoteFailure", func(t *testing.T) {
		mock := prediction.NewMockPredictor()
		mock.SetError(prediction.NewPredictionError("Predict", prediction.MockEndpoint, codes.Unavailable, prediction.ErrEndpointUnavailable))
		svc := NewPredictionService(mock, 0, quietLogger())

		_, err := svc.Predict(ctx, []byte(`{}`))
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrInvalidPayload))

		var predErr *prediction.PredictionError
		require.True(t, errors.As(err, &predErr))
		assert.Equal(t, codes.Unavailable, predErr.Code)
	})

	t.Run("NonFinitePrediction", func(t *testing.T) {
		mock := prediction.NewMockPredictor(structpb.NewNumberValue(math.NaN()))
		svc := NewPredictionService(mock, 0, quietLogger())

		_, err := svc.Predict(ctx, []byte(`{}`))
		assert.True(t, errors.Is(err, ErrInvalidPrediction))
	})

	t.Run("Timeout", func(t *testing.T) {
		svc := NewPredictionService(slowPredictor{}, 20*time.Millisecond, quietLogger())

		_, err := svc.Predict(ctx, []byte(`{}`))
		require.Error(t, err)
		assert.True(t, prediction.IsTimeout(err))
	})

	t.Run("Endpoint", func(t *testing.T) {
		svc := NewPredictionService(prediction.NewMockPredictor(), 0, nil)
		assert.Equal(t, prediction.MockEndpoint, svc.Endpoint())
	})
}

func TestServiceContainer(t *testing.T) {
	_, err := NewServiceContainer(nil, nil)
	assert.Error(t, err)

	mock := prediction.NewMockPredictor()
	container, err := NewServiceContainer(mock, &ServiceConfig{Logger: quietLogger()})
	require.NoError(t, err)
	require.NoError(t, container.Validate())

	require.NoError(t, container.Close())
	_, err = container.PredictionService.Predict(context.Background(), []byte(`{}`))
	assert.True(t, errors.Is(err, prediction.ErrClosed))
}
