package ports

import (
	"context"

	"github.com/lorrc/mentor-portal/internal/core/domain"
)

// AccountGateway is the port to the account backend. Every call reports its
// outcome as a Result instead of an error so callers can branch on the kind
// of failure.
type AccountGateway interface {
	// CheckPassword confirms password belongs to the session's user.
	CheckPassword(ctx context.Context, session domain.Session, password string) domain.Result[domain.Empty]
	// CheckEmail succeeds when no account uses email yet.
	CheckEmail(ctx context.Context, email string) domain.Result[domain.Empty]
	Register(ctx context.Context, req domain.RegisterRequest) domain.Result[domain.RegisterReceipt]
	FetchProfile(ctx context.Context, session domain.Session) domain.Result[domain.UserProfileView]
}

// CountryDirectory translates between country codes and display names.
type CountryDirectory interface {
	CodeToName(code string) string
	NameToCode(name string) (string, bool)
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
