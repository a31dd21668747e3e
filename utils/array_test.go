package utils_test

import (
	"testing"

	"github.com/blutspende/labdesk/utils"

	assert "github.com/go-playground/assert/v2"
)

type role string

func TestJoinEnumsAsString(t *testing.T) {
	assert.Equal(t, "DOCTOR, LAB_TECHNICIAN", utils.JoinEnumsAsString([]role{"DOCTOR", "LAB_TECHNICIAN"}, ", "))
	assert.Equal(t, "", utils.JoinEnumsAsString([]role{}, ", "))
}
