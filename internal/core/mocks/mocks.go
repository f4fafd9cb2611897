package mocks

import (
	"context"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	"github.com/lorrc/mentor-portal/internal/core/forms"
	"github.com/lorrc/mentor-portal/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// MockAccountGateway is a mock implementation of ports.AccountGateway
type MockAccountGateway struct {
	mock.Mock
}

var _ ports.AccountGateway = (*MockAccountGateway)(nil)

func NewMockAccountGateway() *MockAccountGateway {
	return &MockAccountGateway{}
}

func (m *MockAccountGateway) CheckPassword(ctx context.Context, session domain.Session, password string) domain.Result[domain.Empty] {
	args := m.Called(ctx, session, password)
	return args.Get(0).(domain.Result[domain.Empty])
}

func (m *MockAccountGateway) CheckEmail(ctx context.Context, email string) domain.Result[domain.Empty] {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Result[domain.Empty])
}

func (m *MockAccountGateway) Register(ctx context.Context, req domain.RegisterRequest) domain.Result[domain.RegisterReceipt] {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Result[domain.RegisterReceipt])
}

func (m *MockAccountGateway) FetchProfile(ctx context.Context, session domain.Session) domain.Result[domain.UserProfileView] {
	args := m.Called(ctx, session)
	return args.Get(0).(domain.Result[domain.UserProfileView])
}

// MockSignupService is a mock implementation of ports.SignupService
type MockSignupService struct {
	mock.Mock
}

var _ ports.SignupService = (*MockSignupService)(nil)

func NewMockSignupService() *MockSignupService {
	return &MockSignupService{}
}

func (m *MockSignupService) NewForm() *forms.Form {
	args := m.Called()
	return args.Get(0).(*forms.Form)
}

func (m *MockSignupService) Submit(ctx context.Context, sub ports.SignupSubmission) ports.SignupOutcome {
	args := m.Called(ctx, sub)
	return args.Get(0).(ports.SignupOutcome)
}

// MockProfileService is a mock implementation of ports.ProfileService
type MockProfileService struct {
	mock.Mock
}

var _ ports.ProfileService = (*MockProfileService)(nil)

func NewMockProfileService() *MockProfileService {
	return &MockProfileService{}
}

func (m *MockProfileService) Summary(ctx context.Context, session domain.Session) (domain.ProfileSummary, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(domain.ProfileSummary), args.Error(1)
}

func (m *MockProfileService) Profile(ctx context.Context, session domain.Session) (*domain.UserProfileView, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfileView), args.Error(1)
}

func (m *MockProfileService) NewPasswordForm() *forms.Form {
	args := m.Called()
	return args.Get(0).(*forms.Form)
}

func (m *MockProfileService) ConfirmPassword(ctx context.Context, session domain.Session, input ports.PasswordConfirmationInput) ports.ConfirmOutcome {
	args := m.Called(ctx, session, input)
	return args.Get(0).(ports.ConfirmOutcome)
}
