package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
	"github.com/lorrc/mentor-portal/internal/core/forms"
	"github.com/lorrc/mentor-portal/internal/core/ports"
)

// MsgPasswordNotConfirmed is shown in the edit gate when the backend refuses the password.
const MsgPasswordNotConfirmed = "Password does not match."

// ProfileService implements the profile page and its edit gate
type ProfileService struct {
	gateway      ports.AccountGateway
	countries    ports.CountryDirectory
	gateFields   []forms.FieldDescriptor
	rules        *forms.Engine
	defaultImage string
	logger       *slog.Logger
}

var _ ports.ProfileService = (*ProfileService)(nil)

// NewProfileService creates a new profile service. defaultImage is shown for
// users without a profile image.
func NewProfileService(
	gateway ports.AccountGateway,
	countries ports.CountryDirectory,
	gateFields []forms.FieldDescriptor,
	rules *forms.Engine,
	defaultImage string,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		gateway:      gateway,
		countries:    countries,
		gateFields:   gateFields,
		rules:        rules,
		defaultImage: defaultImage,
		logger:       logger,
	}
}

// Summary returns the summary rows of the session's user. When the profile
// cannot be fetched the rows are still returned, empty, alongside the error.
func (s *ProfileService) Summary(ctx context.Context, session domain.Session) (domain.ProfileSummary, error) {
	profile, err := s.Profile(ctx, session)
	return domain.BuildProfileSummary(profile, s.countries.CodeToName, s.defaultImage), err
}

func (s *ProfileService) Profile(ctx context.Context, session domain.Session) (*domain.UserProfileView, error) {
	res := s.gateway.FetchProfile(ctx, session)
	if !res.OK() {
		failure := res.Failure()
		s.logger.WarnContext(ctx, "profile fetch failed", "kind", failure.Kind, "error", failure.Message)
		if failure.Kind == domain.FailureUnauthorized {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, failure)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, failure)
	}
	profile := res.Value()
	return &profile, nil
}

func (s *ProfileService) NewPasswordForm() *forms.Form {
	return forms.New(s.gateFields)
}

// ConfirmPassword checks the edit-gate password. Local rules run first and
// block the remote call; any remote failure reads as a mismatch.
func (s *ProfileService) ConfirmPassword(ctx context.Context, session domain.Session, input ports.PasswordConfirmationInput) ports.ConfirmOutcome {
	form := s.NewPasswordForm()
	form.Set(FieldPassword, input.Password)

	if !form.Validate(s.rules) {
		return ports.ConfirmOutcome{Form: form, Err: form.ValidationErrors()}
	}

	res := s.gateway.CheckPassword(ctx, session, input.Password)
	if !res.OK() {
		failure := res.Failure()
		s.logger.InfoContext(ctx, "password confirmation refused", "kind", failure.Kind)
		form.SetError(FieldPassword, MsgPasswordNotConfirmed)
		return ports.ConfirmOutcome{
			Form: form,
			Err:  fmt.Errorf("%w: %v", apperrors.ErrPasswordNotConfirmed, failure),
		}
	}

	return ports.ConfirmOutcome{
		Form:     form,
		Redirect: &domain.Redirect{Path: domain.RouteProfileEdit},
	}
}
