package ports

import (
	"context"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	"github.com/lorrc/mentor-portal/internal/core/forms"
)

// SignupService runs the signup workflow.
type SignupService interface {
	// NewForm returns an empty signup form.
	NewForm() *forms.Form
	Submit(ctx context.Context, sub SignupSubmission) SignupOutcome
}

// ProfileService backs the profile page and its password-gated edit entry.
type ProfileService interface {
	Summary(ctx context.Context, session domain.Session) (domain.ProfileSummary, error)
	Profile(ctx context.Context, session domain.Session) (*domain.UserProfileView, error)
	// NewPasswordForm returns an empty edit-gate form.
	NewPasswordForm() *forms.Form
	ConfirmPassword(ctx context.Context, session domain.Session, input PasswordConfirmationInput) ConfirmOutcome
}

// SignupSubmission is the raw state of a submitted signup form.
type SignupSubmission struct {
	// Fields holds the descriptor-driven text inputs by name.
	Fields     map[string]string
	BirthDate  string
	Role       string
	Country    string
	Categories []string
}

// SignupOutcome is the result of one signup submission. Form and Input echo the
// submitted state so a page can re-render it; Notification is set only on success.
type SignupOutcome struct {
	Form         *forms.Form
	Input        domain.RegistrationInput
	Notification *domain.Notification
	Err          error
}

// Registered reports whether the backend accepted the registration.
func (o SignupOutcome) Registered() bool {
	return o.Notification != nil
}

// PasswordConfirmationInput is the single field of the edit-gate dialog.
type PasswordConfirmationInput struct {
	Password string
}

// ConfirmOutcome is the result of one edit-gate submission. Redirect is set
// only when the password was confirmed.
type ConfirmOutcome struct {
	Form     *forms.Form
	Redirect *domain.Redirect
	Err      error
}

func (o ConfirmOutcome) Confirmed() bool {
	return o.Redirect != nil
}
