package utils

import "database/sql"

func SqlNullStringToStringPointer(value sql.NullString) *string {
	if value.Valid {
		return &value.String
	}
	return nil
}

func SqlNullInt64ToIntPointer(value sql.NullInt64) *int {
	if value.Valid {
		i := int(value.Int64)
		return &i
	}
	return nil
}

func StringPointerToSqlNullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func IntPointerToSqlNullInt64(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
