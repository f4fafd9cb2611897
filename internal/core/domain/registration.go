package domain

import (
	"strings"
	"time"

	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
)

// Role is the side of the mentoring relationship a user signs up for.
type Role string

const (
	RoleMentor Role = "MENTOR"
	RoleMentee Role = "MENTEE"
)

// Roles lists the selectable roles in display order.
var Roles = []Role{RoleMentor, RoleMentee}

// ParseRole accepts the exact role names only.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMentor, RoleMentee:
		return Role(s), true
	}
	return "", false
}

// Signup widget defaults.
const (
	DefaultCountry = "United States"
	DefaultRole    = RoleMentor
)

// DefaultCategories returns the preselected interest tags.
func DefaultCategories() []string {
	return []string{"K-POP", "Game"}
}

// Registration status values reported by the account backend.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// BirthDateLayout is the calendar-date format sent to the backend.
const BirthDateLayout = "2006-01-02"

// RegistrationInput is the state of the signup form at submit time.
type RegistrationInput struct {
	FirstName            string
	LastName             string
	Email                string
	Password             string
	PasswordConfirmation string
	BirthDate            string
	Role                 Role
	Country              string
	CategoryList         []string
	Phone                string
}

// DefaultRegistrationInput is the form state before the user touches anything.
func DefaultRegistrationInput() RegistrationInput {
	return RegistrationInput{
		Role:         DefaultRole,
		Country:      DefaultCountry,
		CategoryList: DefaultCategories(),
	}
}

// HasCategory reports whether tag is selected.
func (in RegistrationInput) HasCategory(tag string) bool {
	for _, c := range in.CategoryList {
		if c == tag {
			return true
		}
	}
	return false
}

// RegisterRequest is the registration payload sent to the account backend.
type RegisterRequest struct {
	FirstName    string   `json:"firstName" validate:"required,max=50"`
	LastName     string   `json:"lastName" validate:"required,max=50"`
	Email        string   `json:"email" validate:"required,email,max=255"`
	Password     string   `json:"password" validate:"required,account_password"`
	Role         Role     `json:"role" validate:"required,oneof=MENTOR MENTEE"`
	Country      string   `json:"country" validate:"required,len=2,alpha"`
	BirthDate    *string  `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	CategoryList []string `json:"categoryList" validate:"max=10,dive,required,max=30"`
	Phone        string   `json:"phone" validate:"omitempty,phone"`
	Introduction *string  `json:"introduction"`
	ProfileImage *string  `json:"profileImage"`
}

// RegisterReceipt is the backend's answer to a registration.
type RegisterReceipt struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

// Succeeded reports whether the backend accepted the registration.
func (r RegisterReceipt) Succeeded() bool {
	return r.Status == StatusSuccess
}

// NewRegisterRequest builds a fresh payload from the form state. countryCode is
// the already resolved code and birthDate the formatted date or nil.
func NewRegisterRequest(in RegistrationInput, countryCode string, birthDate *string) RegisterRequest {
	return RegisterRequest{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(in.Email),
		Password:     in.Password,
		Role:         in.Role,
		Country:      countryCode,
		BirthDate:    birthDate,
		CategoryList: NormalizeCategories(in.CategoryList),
		Phone:        strings.TrimSpace(in.Phone),
	}
}

var birthDateInputLayouts = []string{BirthDateLayout, time.RFC3339}

// FormatBirthDate converts a date input into the wire format. An empty input
// yields nil; anything unparsable yields ErrInvalidBirthDate.
func FormatBirthDate(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range birthDateInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			s := t.Format(BirthDateLayout)
			return &s, nil
		}
	}
	return nil, apperrors.ErrInvalidBirthDate
}

// NormalizeCategories trims tags and drops blanks and duplicates, keeping order.
func NormalizeCategories(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
