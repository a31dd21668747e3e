package labdesk

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParameterValue = errors.New(MsgMissingParameterValue)
	ErrUnknownParameter      = errors.New(MsgUnknownParameter)
	ErrUnknownTestType       = errors.New(MsgUnknownTestType)
	ErrTestTypeMismatch      = errors.New(MsgTestTypeMismatch)

	ErrInvalidCredentials      = errors.New(MsgInvalidCredentials)
	ErrBackendUnavailable      = errors.New(MsgBackendUnavailable)
	ErrBackendUnauthorized     = errors.New(MsgBackendUnauthorized)
	ErrBackendForbidden        = errors.New(MsgBackendForbidden)
	ErrBackendRequestFailed    = errors.New(MsgBackendRequestFailed)
	ErrLabRequestNotFound      = errors.New(MsgLabRequestNotFound)
	ErrUnmarshalResponseFailed = errors.New(MsgUnmarshalResponseFailed)

	ErrSessionNotFound   = errors.New(MsgSessionNotFound)
	ErrSaveSessionFailed = errors.New(MsgSaveSessionFailed)
	ErrDraftNotFound     = errors.New(MsgDraftNotFound)
	ErrSaveDraftFailed   = errors.New(MsgSaveDraftFailed)
	ErrCacheMiss         = errors.New(MsgCacheMiss)

	ErrCreateSubmissionFailed = errors.New(MsgCreateSubmissionFailed)
	ErrGetSubmissionsFailed   = errors.New(MsgGetSubmissionsFailed)
)

const (
	ApiStartMsg           = "API server labdesk has been started"
	ApiEndedGracefullyMsg = "API server labdesk ended gracefully"
	ApiFailedToStartMsg   = "Failed to start API server labdesk"

	MsgMissingParameterValue = "missing parameter value"
	MsgUnknownParameter      = "unknown parameter"
	MsgUnknownTestType       = "unknown test type"
	MsgTestTypeMismatch      = "test type does not match the lab request"

	MsgInvalidCredentials      = "invalid username or password"
	MsgBackendUnavailable      = "hospital backend unavailable"
	MsgBackendUnauthorized     = "hospital backend rejected the access token"
	MsgBackendForbidden        = "hospital backend denied access for the user role"
	MsgBackendRequestFailed    = "hospital backend request failed"
	MsgLabRequestNotFound      = "invalid or already processed lab request"
	MsgUnmarshalResponseFailed = "unmarshal hospital backend response failed"

	MsgSessionNotFound   = "session not found"
	MsgSaveSessionFailed = "save session failed"
	MsgDraftNotFound     = "draft not found"
	MsgSaveDraftFailed   = "save draft failed"
	MsgCacheMiss         = "cache miss"

	MsgCreateSubmissionFailed = "create submission journal entry failed"
	MsgGetSubmissionsFailed   = "get submission journal entries failed"

	InvalidBodyInRequest  = "can't not bind request body!"
	InvalidIdParameterMsg = "invalid id parameter"
)

// MissingValueError - submission gate failure, names the first parameter without a value
type MissingValueError struct {
	Parameter string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("%s: %s", MsgMissingParameterValue, e.Parameter)
}

func (e *MissingValueError) Is(target error) bool {
	return target == ErrMissingParameterValue
}

// UnknownParameterError - a value was supplied for a name that the test type does not have
type UnknownParameterError struct {
	TestType  TestType
	Parameter string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("%s %q for %s", MsgUnknownParameter, e.Parameter, e.TestType)
}

func (e *UnknownParameterError) Is(target error) bool {
	return target == ErrUnknownParameter
}

// BackendError - the hospital backend answered with an error status
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (%d)", MsgBackendRequestFailed, e.StatusCode)
	}
	return fmt.Sprintf("%s (%d): %s", MsgBackendRequestFailed, e.StatusCode, e.Detail)
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackendRequestFailed
}
