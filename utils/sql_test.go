package utils_test

import (
	"database/sql"
	"testing"

	"github.com/blutspende/labdesk/utils"

	assert "github.com/go-playground/assert/v2"
)

func TestSqlNullConversions(t *testing.T) {
	detail := "Invalid or already processed request."
	resultID := 42

	assert.Equal(t, (*string)(nil), utils.SqlNullStringToStringPointer(sql.NullString{}))
	assert.Equal(t, detail, *utils.SqlNullStringToStringPointer(sql.NullString{String: detail, Valid: true}))

	assert.Equal(t, (*int)(nil), utils.SqlNullInt64ToIntPointer(sql.NullInt64{}))
	assert.Equal(t, 42, *utils.SqlNullInt64ToIntPointer(sql.NullInt64{Int64: 42, Valid: true}))

	assert.Equal(t, sql.NullString{}, utils.StringPointerToSqlNullString(nil))
	assert.Equal(t, sql.NullString{String: detail, Valid: true}, utils.StringPointerToSqlNullString(&detail))
	assert.Equal(t, sql.NullInt64{Int64: 42, Valid: true}, utils.IntPointerToSqlNullInt64(&resultID))
}
