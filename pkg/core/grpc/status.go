package grpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	mzwerror "github.com/msto63/mZW/foundation/core/error"
)

// StatusCode maps a library error to the gRPC code a client should see:
// validation failures become InvalidArgument, arithmetic overflow becomes
// OutOfRange
func StatusCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if _, ok := status.FromError(err); ok {
		return status.Code(err)
	}

	switch {
	case mzwerror.IsValidation(err):
		return codes.InvalidArgument
	case mzwerror.IsOverflow(err):
		return codes.OutOfRange
	}

	switch mzwerror.CodeOf(err) {
	case mzwerror.CodeEmptyStructure:
		return codes.FailedPrecondition
	case mzwerror.CodeNotFound:
		return codes.NotFound
	case mzwerror.CodeInvalidConfig, mzwerror.CodeMissingConfig, mzwerror.CodeConfigError:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// ToStatus converts err into a gRPC status error; nil stays nil
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(StatusCode(err), err.Error())
}
