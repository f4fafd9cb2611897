package services_test

import (
	"context"
	"testing"

	"github.com/lorrc/mentor-portal/internal/catalog"
	"github.com/lorrc/mentor-portal/internal/core/domain"
	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
	"github.com/lorrc/mentor-portal/internal/core/forms"
	"github.com/lorrc/mentor-portal/internal/core/mocks"
	"github.com/lorrc/mentor-portal/internal/core/ports"
	"github.com/lorrc/mentor-portal/internal/core/services"
	"github.com/lorrc/mentor-portal/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSignupService(t *testing.T, gateway ports.AccountGateway) *services.SignupService {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return services.NewSignupService(gateway, c, c.SignupFields(), forms.NewEngine(), logging.Discard())
}

func validSubmission() ports.SignupSubmission {
	return ports.SignupSubmission{
		Fields: map[string]string{
			"firstName":     "Jane",
			"lastName":      "Doe",
			"email":         "jane@example.com",
			"password":      "Passw0rd!",
			"passwordcheck": "Passw0rd!",
			"phone":         "010-1234-5678",
		},
		BirthDate:  "1994-03-07",
		Role:       "MENTEE",
		Country:    "South Korea",
		Categories: []string{"K-POP", "Game", "K-POP"},
	}
}

func TestSignupService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("field rules block remote calls", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)

		out := svc.Submit(ctx, ports.SignupSubmission{Role: "MENTOR", Country: "United States"})

		assert.False(t, out.Registered())
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, out.Err, &verrs)
		assert.Equal(t, "Please enter your first name", out.Form.Error("firstName"))
		assert.Equal(t, "Please enter your email", out.Form.Error("email"))
		assert.Equal(t, "Please enter your password", out.Form.Error("password"))
		gateway.AssertNotCalled(t, "CheckEmail", mock.Anything, mock.Anything)
		gateway.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("widget checks block remote calls", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)

		sub := validSubmission()
		sub.Country = "Atlantis"
		sub.Role = "ADMIN"
		sub.BirthDate = "yesterday"

		out := svc.Submit(ctx, sub)

		assert.Equal(t, services.MsgSelectCountry, out.Form.Error("country"))
		assert.Equal(t, services.MsgSelectRole, out.Form.Error("role"))
		assert.Equal(t, services.MsgInvalidBirthDate, out.Form.Error("birthDate"))
		gateway.AssertNotCalled(t, "CheckEmail", mock.Anything, mock.Anything)
	})

	t.Run("email already used", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)
		gateway.On("CheckEmail", mock.Anything, "jane@example.com").
			Return(domain.Fail[domain.Empty](domain.FailureRejected, "exists"))

		out := svc.Submit(ctx, validSubmission())

		assert.ErrorIs(t, out.Err, apperrors.ErrEmailTaken)
		assert.Equal(t, "User using this email already exists", out.Form.Error("email"))
		assert.Empty(t, out.Form.FormErrors())
		gateway.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		gateway.AssertExpectations(t)
	})

	t.Run("email check failure that is not a rejection", func(t *testing.T) {
		for _, kind := range []domain.FailureKind{domain.FailureTransport, domain.FailureUnexpected, domain.FailureUnauthorized} {
			t.Run(string(kind), func(t *testing.T) {
				gateway := mocks.NewMockAccountGateway()
				svc := newSignupService(t, gateway)
				gateway.On("CheckEmail", mock.Anything, mock.Anything).
					Return(domain.Fail[domain.Empty](kind, "boom"))

				out := svc.Submit(ctx, validSubmission())

				assert.ErrorIs(t, out.Err, apperrors.ErrEmailCheckUnclassified)
				assert.Empty(t, out.Form.Error("email"))
				assert.Equal(t, []string{services.MsgEmailCheckFailed}, out.Form.FormErrors())
				gateway.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("passwords differ", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)
		gateway.On("CheckEmail", mock.Anything, mock.Anything).Return(domain.Ok(domain.Empty{}))

		sub := validSubmission()
		sub.Fields["passwordcheck"] = "Passw0rd?"

		out := svc.Submit(ctx, sub)

		assert.ErrorIs(t, out.Err, apperrors.ErrPasswordMismatch)
		assert.Equal(t, "Passwords do not match", out.Form.Error("passwordcheck"))
		gateway.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("success sends one fresh payload", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)
		gateway.On("CheckEmail", mock.Anything, "jane@example.com").Return(domain.Ok(domain.Empty{}))

		var sent domain.RegisterRequest
		gateway.On("Register", mock.Anything, mock.AnythingOfType("domain.RegisterRequest")).
			Run(func(args mock.Arguments) { sent = args.Get(1).(domain.RegisterRequest) }).
			Return(domain.Ok(domain.RegisterReceipt{Status: "success"})).
			Once()

		out := svc.Submit(ctx, validSubmission())

		require.NoError(t, out.Err)
		require.True(t, out.Registered())
		assert.Equal(t, "Sign up success", out.Notification.Message)
		assert.Equal(t, "OKAY", out.Notification.ActionLabel)
		assert.Equal(t, domain.Redirect{Path: "/", Replace: true}, out.Notification.Dismiss)

		assert.Equal(t, "KR", sent.Country)
		require.NotNil(t, sent.BirthDate)
		assert.Equal(t, "1994-03-07", *sent.BirthDate)
		assert.Equal(t, domain.RoleMentee, sent.Role)
		assert.Equal(t, []string{"K-POP", "Game"}, sent.CategoryList)
		assert.Equal(t, "Passw0rd!", sent.Password)
		assert.Nil(t, sent.Introduction)
		assert.Nil(t, sent.ProfileImage)
		gateway.AssertNumberOfCalls(t, "Register", 1)
	})

	t.Run("email surrounded by spaces is accepted", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)
		gateway.On("CheckEmail", mock.Anything, "jane@example.com").Return(domain.Ok(domain.Empty{}))
		gateway.On("Register", mock.Anything, mock.MatchedBy(func(req domain.RegisterRequest) bool {
			return req.Email == "jane@example.com"
		})).Return(domain.Ok(domain.RegisterReceipt{Status: "success"}))

		sub := validSubmission()
		sub.Fields["email"] = " jane@example.com "
		out := svc.Submit(ctx, sub)

		require.NoError(t, out.Err)
		assert.True(t, out.Registered())
		assert.Empty(t, out.Form.Error("email"))
		gateway.AssertExpectations(t)
	})

	t.Run("empty birth date is sent as null", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)
		gateway.On("CheckEmail", mock.Anything, mock.Anything).Return(domain.Ok(domain.Empty{}))
		gateway.On("Register", mock.Anything, mock.MatchedBy(func(req domain.RegisterRequest) bool {
			return req.BirthDate == nil
		})).Return(domain.Ok(domain.RegisterReceipt{Status: "success"}))

		sub := validSubmission()
		sub.BirthDate = ""

		out := svc.Submit(ctx, sub)

		assert.True(t, out.Registered())
		gateway.AssertExpectations(t)
	})

	t.Run("non-success receipt shows generic error", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)
		gateway.On("CheckEmail", mock.Anything, mock.Anything).Return(domain.Ok(domain.Empty{}))
		gateway.On("Register", mock.Anything, mock.Anything).
			Return(domain.Ok(domain.RegisterReceipt{Status: "fail"}))

		out := svc.Submit(ctx, validSubmission())

		assert.False(t, out.Registered())
		assert.ErrorIs(t, out.Err, apperrors.ErrRegistrationRejected)
		assert.Equal(t, []string{"Sign up failed. Please try again."}, out.Form.FormErrors())
	})

	t.Run("register transport failure shows generic error", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)
		gateway.On("CheckEmail", mock.Anything, mock.Anything).Return(domain.Ok(domain.Empty{}))
		gateway.On("Register", mock.Anything, mock.Anything).
			Return(domain.Fail[domain.RegisterReceipt](domain.FailureTransport, "connection refused"))

		out := svc.Submit(ctx, validSubmission())

		assert.False(t, out.Registered())
		assert.ErrorIs(t, out.Err, apperrors.ErrRegistrationFailed)
		assert.Equal(t, []string{"Sign up failed. Please try again."}, out.Form.FormErrors())
	})

	t.Run("outcome echoes submitted state", func(t *testing.T) {
		gateway := mocks.NewMockAccountGateway()
		svc := newSignupService(t, gateway)

		sub := validSubmission()
		sub.Fields["email"] = "broken"

		out := svc.Submit(ctx, sub)

		assert.Equal(t, "broken", out.Form.Value("email"))
		assert.Equal(t, "South Korea", out.Input.Country)
		assert.Equal(t, domain.RoleMentee, out.Input.Role)
		assert.Equal(t, []string{"K-POP", "Game"}, out.Input.CategoryList)
	})
}
