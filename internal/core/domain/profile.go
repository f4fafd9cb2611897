package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Session identifies the signed-in user of a request.
type Session struct {
	UserID uuid.UUID
	Token  string
}

// UserProfileView is the read-only projection of a user the profile page shows.
// Country holds the country code.
type UserProfileView struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	BirthDate    string   `json:"birthDate"`
	Phone        string   `json:"phone"`
	Country      string   `json:"country"`
	Introduction string   `json:"introduction"`
	Role         Role     `json:"role"`
	ProfileImage string   `json:"profileImage"`
	CategoryList []string `json:"categoryList,omitempty"`
}

// FullName joins first and last name, tolerating either being empty.
func (p UserProfileView) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// KeyValue is one labelled row of the profile summary.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Summary row labels, in display order.
const (
	SummaryName    = "Name"
	SummaryEmail   = "Email"
	SummaryBirth   = "Birth"
	SummaryPhone   = "TEL"
	SummaryCountry = "Country"
	SummaryBio     = "bio"
	SummaryRole    = "Role"
)

// ProfileSummary is the rendered form of a profile: fixed rows plus the image to show.
type ProfileSummary struct {
	ProfileImage string     `json:"profileImage"`
	Rows         []KeyValue `json:"rows"`
}

// BuildProfileSummary lays out profile as the seven summary rows. A nil profile
// yields the same rows with empty values. countryName maps a code to its display
// name and defaultImage is used when the profile has no image.
func BuildProfileSummary(profile *UserProfileView, countryName func(code string) string, defaultImage string) ProfileSummary {
	var p UserProfileView
	if profile != nil {
		p = *profile
	}

	country := ""
	if p.Country != "" && countryName != nil {
		country = countryName(p.Country)
	}

	image := p.ProfileImage
	if image == "" {
		image = defaultImage
	}

	return ProfileSummary{
		ProfileImage: image,
		Rows: []KeyValue{
			{Key: SummaryName, Value: p.FullName()},
			{Key: SummaryEmail, Value: p.Email},
			{Key: SummaryBirth, Value: p.BirthDate},
			{Key: SummaryPhone, Value: p.Phone},
			{Key: SummaryCountry, Value: country},
			{Key: SummaryBio, Value: p.Introduction},
			{Key: SummaryRole, Value: string(p.Role)},
		},
	}
}
