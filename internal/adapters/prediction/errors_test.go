package prediction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFromRemote(t *testing.T) {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.InvalidArgument, ErrInstanceRejected},
		{codes.FailedPrecondition, ErrInstanceRejected},
		{codes.NotFound, ErrEndpointNotFound},
		{codes.Unauthenticated, ErrUnauthorized},
		{codes.PermissionDenied, ErrUnauthorized},
		{codes.DeadlineExceeded, ErrTimeout},
		{codes.Unavailable, ErrEndpointUnavailable},
		{codes.ResourceExhausted, ErrEndpointUnavailable},
		{codes.Internal, ErrRemoteFailure},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := FromRemote("Predict", "projects/p/locations/l/endpoints/e", status.Error(tt.code, "boom"))

			assert.Equal(t, tt.code, err.Code)
			assert.True(t, errors.Is(err, tt.want))
			assert.Contains(t, err.Error(), "projects/p/locations/l/endpoints/e")
		})
	}

	t.Run("ContextDeadline", func(t *testing.T) {
		err := FromRemote("Predict", "e", fmt.Errorf("rpc: %w", context.DeadlineExceeded))
		assert.True(t, IsTimeout(err))
	})

	t.Run("PlainError", func(t *testing.T) {
		err := FromRemote("Predict", "", errors.New("connection reset"))
		assert.True(t, errors.Is(err, ErrRemoteFailure))
		assert.Equal(t, "prediction Predict failed: prediction endpoint failure: connection reset", err.Error())
	})
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsClientFault(fmt.Errorf("wrapped: %w", ErrInvalidInstance)))
	assert.True(t, IsClientFault(FromRemote("Predict", "e", status.Error(codes.InvalidArgument, "bad"))))
	assert.False(t, IsClientFault(FromRemote("Predict", "e", status.Error(codes.Internal, "bad"))))

	assert.True(t, IsUnavailable(FromRemote("Predict", "e", status.Error(codes.Unavailable, "down"))))
	assert.False(t, IsTimeout(errors.New("other")))
}
