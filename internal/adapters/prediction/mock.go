package prediction

import (
	"context"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Names reported by MockPredictor
const (
	MockEndpoint = "mock"
	MockModel    = "models/mock"
)

// MockPredictor is an in-memory implementation of Predictor for testing and local runs.
// With no canned predictions it echoes the instances back.
type MockPredictor struct {
	mu              sync.RWMutex
	predictions     []*structpb.Value
	deployedModelID string
	err             error
	calls           []*PredictRequest
	closed          bool
}

// NewMockPredictor creates a new MockPredictor returning the given predictions
func NewMockPredictor(predictions ...*structpb.Value) *MockPredictor {
	return &MockPredictor{
		predictions:     predictions,
		deployedModelID: "mock-model",
	}
}

// SetError makes every subsequent call fail with err
func (m *MockPredictor) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Predict implements Predictor.Predict
func (m *MockPredictor) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, NewPredictionError("Predict", MockEndpoint, codes.Canceled, ErrClosed)
	}

	if err := ctx.Err(); err != nil {
		return nil, FromRemote("Predict", MockEndpoint, err)
	}

	m.calls = append(m.calls, cloneRequest(req))

	if m.err != nil {
		return nil, m.err
	}

	predictions := m.predictions
	if predictions == nil {
		predictions = req.Instances
	}

	return &PredictResponse{
		Predictions:     cloneValues(predictions),
		DeployedModelID: m.deployedModelID,
		Model:           MockModel,
	}, nil
}

// Endpoint implements Predictor.Endpoint
func (m *MockPredictor) Endpoint() string {
	return MockEndpoint
}

// Close implements Predictor.Close
func (m *MockPredictor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Calls returns the requests received so far
func (m *MockPredictor) Calls() []*PredictRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]*PredictRequest, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of Predict calls received
func (m *MockPredictor) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}

// Reset clears the recorded calls
func (m *MockPredictor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func cloneRequest(req *PredictRequest) *PredictRequest {
	if req == nil {
		return nil
	}
	return &PredictRequest{Instances: cloneValues(req.Instances)}
}

func cloneValues(values []*structpb.Value) []*structpb.Value {
	out := make([]*structpb.Value, len(values))
	for i, v := range values {
		out[i] = proto.Clone(v).(*structpb.Value)
	}
	return out
}
