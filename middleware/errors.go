package middleware

type ClientError struct {
	MessageKey    string            `json:"messageKey"`
	MessageParams map[string]string `json:"messageParams"`
	Message       string            `json:"message"`
	Errors        []ClientError     `json:"errors"`
}

func (e ClientError) WithParam(key, value string) ClientError {
	params := make(map[string]string, len(e.MessageParams)+1)
	for k, v := range e.MessageParams {
		params[k] = v
	}
	params[key] = value
	e.MessageParams = params
	return e
}

func (e ClientError) WithMessage(message string) ClientError {
	e.Message = message
	return e
}

var (
	ErrMissingSession = ClientError{
		MessageKey: "missingSession",
		Message:    "Missing session",
	}
	ErrInvalidSession = ClientError{
		MessageKey: "invalidSession",
		Message:    "Invalid or expired session",
	}
	ErrNoPrivileges = ClientError{
		MessageKey: "forbidden",
		Message:    "Not authorized",
	}
	ErrInvalidRequestBody = ClientError{
		MessageKey: "invalidRequestBody",
		Message:    "Invalid request body",
	}
	ErrInvalidOrMissingRequestParameter = ClientError{
		MessageKey: "invalidOrMissingRequestParameter",
		Message:    "Invalid or missing request parameter: {{param}}",
	}
	ErrMissingParameterValue = ClientError{
		MessageKey: "missingParameterValue",
		Message:    "Please enter value for {{parameter}}",
	}
	ErrUnknownTestParameter = ClientError{
		MessageKey: "unknownParameter",
		Message:    "Unknown parameter {{parameter}} for test type {{testType}}",
	}
	ErrTestTypeMismatch = ClientError{
		MessageKey: "testTypeMismatch",
		Message:    "Test type does not match the lab request",
	}
	ErrInvalidCredentials = ClientError{
		MessageKey: "invalidCredentials",
		Message:    "Invalid username or password",
	}
	ErrLabRequestNotFound = ClientError{
		MessageKey: "labRequestNotFound",
		Message:    "Invalid or already processed request",
	}
	ErrBackendUnavailable = ClientError{
		MessageKey: "backendUnavailable",
		Message:    "Hospital backend is not reachable",
	}
	ErrBackendRequestFailed = ClientError{
		MessageKey: "backendRequestFailed",
		Message:    "Hospital backend rejected the request",
	}
	ErrRequestTimeout = ClientError{
		MessageKey: "requestTimeout",
		Message:    "Request timed out",
	}
	ErrInternalServerError = ClientError{
		MessageKey: "internalServerError",
		Message:    "Unexpected error",
	}
)
