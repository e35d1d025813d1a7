package control_test

import (
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/signalsfoundry/eventkernel/internal/control"
	"github.com/signalsfoundry/eventkernel/simerr"
)

func TestToStatusErrorMapsKnownTypes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"missing model", &simerr.MissingModelError{ID: "m1"}, codes.NotFound},
		{"model not found", &simerr.ModelNotFoundError{ID: "m1"}, codes.NotFound},
		{"missing connector", &simerr.MissingConnectorError{Model: "m1", Connector: "c"}, codes.InvalidArgument},
		{"time regression", &simerr.TimeRegressionError{Current: stringerTime("5s"), Insertion: stringerTime("4s")}, codes.OutOfRange},
		{"model missing (borrow)", &simerr.ModelMissingError{ID: "m1"}, codes.FailedPrecondition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := control.ToStatusError(tc.err)
			st, ok := status.FromError(out)
			if !ok {
				t.Fatalf("expected a status error, got %v", out)
			}
			if st.Code() != tc.want {
				t.Fatalf("expected code %v, got %v", tc.want, st.Code())
			}
		})
	}
}

func TestToStatusErrorPassesNilThrough(t *testing.T) {
	if got := control.ToStatusError(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestToStatusErrorLeavesExistingStatusUntouched(t *testing.T) {
	original := status.Error(codes.Unavailable, "already wrapped")
	if got := control.ToStatusError(original); got != original {
		t.Fatalf("expected the original status error to pass through unchanged")
	}
}

type stringerTime string

func (s stringerTime) String() string { return string(s) }
