package helpers

import "database/sql"

// NullableString maps an empty string to SQL NULL
func NullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// StringPtr returns nil for an invalid NullString
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// BoolToInt stores a boolean in an INTEGER column
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
