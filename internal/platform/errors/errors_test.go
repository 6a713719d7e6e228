package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	base := New(CodeSessionComplete, "session complete")
	wrapped := fmt.Errorf("submit: %w", Wrap(CodeSessionComplete, "no rounds left", errors.New("cursor at end")))

	if !errors.Is(wrapped, base) {
		t.Fatal("expected errors.Is to match by code")
	}
	if errors.Is(wrapped, New(CodeSessionNotStarted, "not started")) {
		t.Fatal("expected mismatch for different code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodeGridTooSmall, "grid too small")); got != CodeGridTooSmall {
		t.Fatalf("GetCode = %s, want %s", got, CodeGridTooSmall)
	}
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("GetCode = %s, want %s", got, CodeUnknown)
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeInvalidNLevel, codes.InvalidArgument},
		{CodeNoEligibleRounds, codes.InvalidArgument},
		{CodeGridTooSmall, codes.InvalidArgument},
		{CodeSessionComplete, codes.FailedPrecondition},
		{CodeSessionNotStarted, codes.FailedPrecondition},
		{CodeProfileUnknown, codes.NotFound},
		{CodeNotFound, codes.NotFound},
		{CodeUnknown, codes.Internal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.GRPCCode(); got != tt.want {
				t.Errorf("GRPCCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleErrorBuildsLocalizedStatus(t *testing.T) {
	err := WithMetadata(CodeProfileUnknown, "profile lookup failed", map[string]string{"Name": "brutal"})

	st, ok := status.FromError(HandleError(err, "en-US"))
	if !ok {
		t.Fatal("expected gRPC status error")
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.NotFound)
	}
	if st.Message() != "profile lookup failed" {
		t.Fatalf("status message = %q, want internal message", st.Message())
	}
	if len(st.Details()) != 2 {
		t.Fatalf("expected 2 detail payloads, got %d", len(st.Details()))
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	st, ok := status.FromError(HandleError(errors.New("boom"), ""))
	if !ok {
		t.Fatal("expected gRPC status error")
	}
	if st.Code() != codes.Internal {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.Internal)
	}
}

func TestHandleErrorNil(t *testing.T) {
	if err := HandleError(nil, "en-US"); err != nil {
		t.Fatalf("HandleError(nil) = %v, want nil", err)
	}
}
