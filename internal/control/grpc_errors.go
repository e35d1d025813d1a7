// Package control hosts the gRPC surface wrapped around a Simulation: a
// health service plus the interceptors and error mapping a caller needs to
// drive a kernel process remotely.
package control

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/signalsfoundry/eventkernel/simerr"
)

// ToStatusError maps the kernel's typed errors onto gRPC status codes.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var (
		missingModel     *simerr.MissingModelError
		missingConnector *simerr.MissingConnectorError
		modelMissing     *simerr.ModelMissingError
		modelNotFound    *simerr.ModelNotFoundError
		typeMismatch     *simerr.ConnectionTypeMismatchError
		invalidConnModel *simerr.InvalidConnectorModelError
		repeatedOutput   *simerr.RepeatedOutputError
		timeRegression   *simerr.TimeRegressionError
		invalidEventType *simerr.InvalidEventTypeError
		invalidModelType *simerr.InvalidModelTypeError
		unknownConnector *simerr.UnknownModelConnectorError
	)

	switch {
	case errors.As(err, &missingModel), errors.As(err, &modelNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.As(err, &missingConnector),
		errors.As(err, &typeMismatch),
		errors.As(err, &invalidConnModel),
		errors.As(err, &repeatedOutput),
		errors.As(err, &invalidEventType),
		errors.As(err, &invalidModelType),
		errors.As(err, &unknownConnector):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.As(err, &modelMissing):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.As(err, &timeRegression):
		return status.Error(codes.OutOfRange, err.Error())

	default:
		return status.Error(codes.Internal, err.Error())
	}
}
