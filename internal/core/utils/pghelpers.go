package utils

import (
	"time"

	// Ensure this import path matches the pgx version you are using (e.g., v5)
	"github.com/jackc/pgx/v5/pgtype"
)

// DateLayout is the calendar-date format dates are exchanged in.
const DateLayout = "2006-01-02"

// FromNullString converts a pgtype.Text to a *string. NULL becomes nil.
func FromNullString(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// ToNullString converts a handler's *string (pointer) to a pgtype.Text.
// A nil pointer is considered invalid (NULL).
func ToNullString(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{
		String: *s,
		Valid:  true,
	}
}

// ToDate parses a "YYYY-MM-DD" pointer into a pgtype.Date. nil is NULL.
func ToDate(s *string) (pgtype.Date, error) {
	if s == nil {
		return pgtype.Date{Valid: false}, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return pgtype.Date{}, err
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}

// FromDate formats a pgtype.Date as "YYYY-MM-DD". NULL becomes nil.
func FromDate(d pgtype.Date) *string {
	if !d.Valid {
		return nil
	}
	s := d.Time.Format(DateLayout)
	return &s
}
