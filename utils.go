package labdesk

import (
	"strconv"
	"strings"
)

func ptr[T any](value T) *T {
	return &value
}

func stringPointerOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// parseRequestID reads the numeric lab request id used by the hospital backend
func parseRequestID(value string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
