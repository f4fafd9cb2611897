package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
	"github.com/lorrc/mentor-portal/internal/core/forms"
	"github.com/lorrc/mentor-portal/internal/core/ports"
)

// Signup form field names.
const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldPasswordCheck = "passwordcheck"
	FieldPhone         = "phone"
	FieldBirthDate     = "birthDate"
	FieldRole          = "role"
	FieldCountry       = "country"
	FieldCategories    = "categoryList"
)

// User-facing signup messages.
const (
	MsgEmailTaken          = "User using this email already exists"
	MsgEmailCheckFailed    = "We could not verify your email address. Please try again."
	MsgPasswordMismatch    = "Passwords do not match"
	MsgPasswordCheckNeeded = "Please check your password"
	MsgInvalidBirthDate    = "Please enter a valid date"
	MsgSelectCountry       = "Please select a country"
	MsgSelectRole          = "Please choose Mentor or Mentee"
	MsgSignupFailed        = "Sign up failed. Please try again."
)

// SignupService implements the signup workflow
type SignupService struct {
	gateway   ports.AccountGateway
	countries ports.CountryDirectory
	fields    []forms.FieldDescriptor
	rules     *forms.Engine
	logger    *slog.Logger
}

var _ ports.SignupService = (*SignupService)(nil)

// NewSignupService creates a new signup service
func NewSignupService(
	gateway ports.AccountGateway,
	countries ports.CountryDirectory,
	fields []forms.FieldDescriptor,
	rules *forms.Engine,
	logger *slog.Logger,
) *SignupService {
	return &SignupService{
		gateway:   gateway,
		countries: countries,
		fields:    fields,
		rules:     rules,
		logger:    logger,
	}
}

func (s *SignupService) NewForm() *forms.Form {
	return forms.New(s.fields)
}

// Submit runs one signup attempt. Steps short-circuit on the first failure:
// local rules, email uniqueness, password match, then registration.
func (s *SignupService) Submit(ctx context.Context, sub ports.SignupSubmission) ports.SignupOutcome {
	form := s.NewForm()
	form.Fill(sub.Fields)

	input := domain.RegistrationInput{
		FirstName:            form.Value(FieldFirstName),
		LastName:             form.Value(FieldLastName),
		Email:                form.Value(FieldEmail),
		Password:             form.Value(FieldPassword),
		PasswordConfirmation: form.Value(FieldPasswordCheck),
		BirthDate:            sub.BirthDate,
		Role:                 domain.Role(sub.Role),
		Country:              sub.Country,
		CategoryList:         domain.NormalizeCategories(sub.Categories),
		Phone:                form.Value(FieldPhone),
	}
	out := ports.SignupOutcome{Form: form, Input: input}

	if !s.validateLocal(form, input) {
		out.Err = form.ValidationErrors()
		return out
	}

	if err := s.checkEmail(ctx, form, input.Email); err != nil {
		out.Err = err
		return out
	}

	if err := checkPasswordMatch(form, input); err != nil {
		out.Err = err
		return out
	}

	req, err := s.buildRequest(ctx, form, input)
	if err != nil {
		out.Err = err
		return out
	}

	res := s.gateway.Register(ctx, req)
	if !res.OK() {
		s.logger.ErrorContext(ctx, "register request failed",
			"kind", res.Failure().Kind,
			"error", res.Failure().Message,
		)
		form.AddFormError(MsgSignupFailed)
		out.Err = fmt.Errorf("%w: %v", apperrors.ErrRegistrationFailed, res.Err())
		return out
	}

	receipt := res.Value()
	if !receipt.Succeeded() {
		s.logger.WarnContext(ctx, "sign up failed",
			"status", receipt.Status,
			"message", receipt.Message,
		)
		form.AddFormError(MsgSignupFailed)
		out.Err = apperrors.ErrRegistrationRejected
		return out
	}

	s.logger.InfoContext(ctx, "sign up succeeded", "user_id", receipt.UserID)
	notification := domain.SignupSucceeded()
	out.Notification = &notification
	return out
}

// validateLocal runs the descriptor rules and the widget checks. Nothing
// remote is called unless it passes.
func (s *SignupService) validateLocal(form *forms.Form, input domain.RegistrationInput) bool {
	ok := form.Validate(s.rules)

	if _, valid := domain.ParseRole(string(input.Role)); !valid {
		form.SetError(FieldRole, MsgSelectRole)
		ok = false
	}
	if _, known := s.countries.NameToCode(input.Country); !known {
		form.SetError(FieldCountry, MsgSelectCountry)
		ok = false
	}
	if _, err := domain.FormatBirthDate(input.BirthDate); err != nil {
		form.SetError(FieldBirthDate, MsgInvalidBirthDate)
		ok = false
	}
	return ok
}

func (s *SignupService) checkEmail(ctx context.Context, form *forms.Form, email string) error {
	res := s.gateway.CheckEmail(ctx, email)
	if res.OK() {
		return nil
	}

	failure := res.Failure()
	switch failure.Kind {
	case domain.FailureRejected:
		form.SetError(FieldEmail, MsgEmailTaken)
		return apperrors.ErrEmailTaken
	case domain.FailureUnauthorized, domain.FailureTransport, domain.FailureUnexpected:
		s.logger.WarnContext(ctx, "email check failed", "kind", failure.Kind, "error", failure.Message)
	default:
		s.logger.ErrorContext(ctx, "email check returned unknown failure kind", "kind", failure.Kind)
	}
	form.AddFormError(MsgEmailCheckFailed)
	return fmt.Errorf("%w: %v", apperrors.ErrEmailCheckUnclassified, failure)
}

func checkPasswordMatch(form *forms.Form, input domain.RegistrationInput) error {
	if input.PasswordConfirmation == "" {
		form.SetError(FieldPasswordCheck, MsgPasswordCheckNeeded)
		return apperrors.ErrPasswordRequired
	}
	if input.Password == "" {
		return apperrors.ErrPasswordRequired
	}
	if input.Password != input.PasswordConfirmation {
		form.SetError(FieldPasswordCheck, MsgPasswordMismatch)
		return apperrors.ErrPasswordMismatch
	}
	form.ClearError(FieldPasswordCheck)
	return nil
}

func (s *SignupService) buildRequest(ctx context.Context, form *forms.Form, input domain.RegistrationInput) (domain.RegisterRequest, error) {
	code, ok := s.countries.NameToCode(input.Country)
	if !ok {
		form.SetError(FieldCountry, MsgSelectCountry)
		return domain.RegisterRequest{}, apperrors.ErrUnknownCountry
	}
	birthDate, err := domain.FormatBirthDate(input.BirthDate)
	if err != nil {
		form.SetError(FieldBirthDate, MsgInvalidBirthDate)
		return domain.RegisterRequest{}, err
	}

	req := domain.NewRegisterRequest(input, code, birthDate)
	if err := s.rules.Struct(req); err != nil {
		var verrs *apperrors.ValidationErrors
		if errors.As(err, &verrs) {
			for field, msgs := range verrs.Errors {
				form.SetError(field, msgs[0])
			}
			return domain.RegisterRequest{}, verrs
		}
		s.logger.ErrorContext(ctx, "register payload validation failed", "error", err)
		form.AddFormError(MsgSignupFailed)
		return domain.RegisterRequest{}, err
	}
	return req, nil
}
