package prediction

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Common prediction error types
var (
	ErrInvalidInstance     = errors.New("invalid prediction instance")
	ErrInstanceRejected    = errors.New("instance rejected by endpoint")
	ErrEndpointNotFound    = errors.New("prediction endpoint not found")
	ErrUnauthorized        = errors.New("not authorized to call prediction endpoint")
	ErrTimeout             = errors.New("prediction timeout")
	ErrEndpointUnavailable = errors.New("prediction endpoint unavailable")
	ErrRemoteFailure       = errors.New("prediction endpoint failure")
	ErrClosed              = errors.New("predictor closed")
)

// PredictionError represents a failed call to a prediction endpoint
type PredictionError struct {
	Op       string     // Operation that failed (e.g., "Predict")
	Endpoint string     // Endpoint resource name
	Code     codes.Code // Remote status code, codes.Unknown when not available
	Err      error      // Underlying error
}

func (e *PredictionError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("prediction %s failed for endpoint '%s': %v", e.Op, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("prediction %s failed: %v", e.Op, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// NewPredictionError creates a new PredictionError
func NewPredictionError(op, endpoint string, code codes.Code, err error) *PredictionError {
	return &PredictionError{
		Op:       op,
		Endpoint: endpoint,
		Code:     code,
		Err:      err,
	}
}

// FromRemote classifies an error returned by the remote client
func FromRemote(op, endpoint string, err error) *PredictionError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewPredictionError(op, endpoint, codes.DeadlineExceeded, fmt.Errorf("%w: %v", ErrTimeout, err))
	}
	if errors.Is(err, context.Canceled) {
		return NewPredictionError(op, endpoint, codes.Canceled, fmt.Errorf("%w: %v", ErrRemoteFailure, err))
	}

	code := status.Code(err)
	return NewPredictionError(op, endpoint, code, fmt.Errorf("%w: %v", sentinelFor(code), err))
}

func sentinelFor(code codes.Code) error {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return ErrInstanceRejected
	case codes.NotFound:
		return ErrEndpointNotFound
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.DeadlineExceeded:
		return ErrTimeout
	case codes.Unavailable, codes.ResourceExhausted:
		return ErrEndpointUnavailable
	default:
		return ErrRemoteFailure
	}
}

// IsClientFault returns true if the endpoint rejected the caller's instance
func IsClientFault(err error) bool {
	return errors.Is(err, ErrInvalidInstance) || errors.Is(err, ErrInstanceRejected)
}

// IsTimeout returns true if the prediction ran out of time
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsUnavailable returns true if the endpoint could not serve the request
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrEndpointUnavailable)
}
