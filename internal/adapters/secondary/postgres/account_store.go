package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	"github.com/lorrc/mentor-portal/internal/core/ports"
	"github.com/lorrc/mentor-portal/internal/core/utils"
)

const uniqueViolation = "23505"

// AccountStore is the embedded account backend: it keeps accounts in
// PostgreSQL and answers the gateway calls itself.
type AccountStore struct {
	pool   *pgxpool.Pool
	tx     *TxManager
	logger *slog.Logger
}

// Ensure implementation matches the interfaces.
var (
	_ ports.AccountGateway = (*AccountStore)(nil)
	_ ports.HealthChecker  = (*AccountStore)(nil)
)

// NewAccountStore creates a new store on pool.
func NewAccountStore(pool *pgxpool.Pool, logger *slog.Logger) *AccountStore {
	return &AccountStore{
		pool:   pool,
		tx:     NewTxManager(pool),
		logger: logger.With("component", "account_store"),
	}
}

// CheckPassword compares password with the stored hash of the session's user.
func (s *AccountStore) CheckPassword(ctx context.Context, session domain.Session, password string) domain.Result[domain.Empty] {
	var hash string
	err := Conn(ctx, s.pool).QueryRow(ctx, `SELECT password_hash FROM accounts WHERE id = $1`,
		pgtype.UUID{Bytes: session.UserID, Valid: true}).Scan(&hash)
	if err != nil {
		return domain.Failed[domain.Empty](s.classify(ctx, "check password", err))
	}

	account := domain.Account{PasswordHash: hash}
	if !account.CheckPassword(password) {
		return domain.Fail[domain.Empty](domain.FailureRejected, "password does not match")
	}
	return domain.Ok(domain.Empty{})
}

// CheckEmail succeeds when no account uses email, compared case-insensitively.
func (s *AccountStore) CheckEmail(ctx context.Context, email string) domain.Result[domain.Empty] {
	var taken bool
	err := Conn(ctx, s.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE lower(email) = lower($1))`, email).Scan(&taken)
	if err != nil {
		return domain.Failed[domain.Empty](s.classify(ctx, "check email", err))
	}
	if taken {
		return domain.Fail[domain.Empty](domain.FailureRejected, "email already registered")
	}
	return domain.Ok(domain.Empty{})
}

// Register stores a new account with its categories in one transaction.
func (s *AccountStore) Register(ctx context.Context, req domain.RegisterRequest) domain.Result[domain.RegisterReceipt] {
	account, err := domain.NewAccount(req)
	if err != nil {
		return domain.Fail[domain.RegisterReceipt](domain.FailureRejected, err.Error())
	}

	birthDate, err := utils.ToDate(account.BirthDate)
	if err != nil {
		return domain.Fail[domain.RegisterReceipt](domain.FailureRejected, "invalid birth date")
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		q := Conn(ctx, s.pool)
		_, err := q.Exec(ctx, `
			INSERT INTO accounts (
				id, first_name, last_name, email, password_hash, birth_date,
				role, country, phone, introduction, profile_image, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			pgtype.UUID{Bytes: account.ID, Valid: true},
			account.FirstName,
			account.LastName,
			account.Email,
			account.PasswordHash,
			birthDate,
			string(account.Role),
			account.Country,
			account.Phone,
			utils.ToNullString(account.Introduction),
			utils.ToNullString(account.ProfileImage),
			account.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}

		for i, category := range account.CategoryList {
			if _, err := q.Exec(ctx,
				`INSERT INTO account_categories (account_id, category, position) VALUES ($1, $2, $3)`,
				pgtype.UUID{Bytes: account.ID, Valid: true}, category, i,
			); err != nil {
				return fmt.Errorf("insert category: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Failed[domain.RegisterReceipt](s.classify(ctx, "register", err))
	}

	s.logger.InfoContext(ctx, "account registered", "user_id", account.ID)
	return domain.Ok(domain.RegisterReceipt{
		Status: domain.StatusSuccess,
		UserID: account.ID.String(),
	})
}

// FetchProfile loads the session's user and their categories.
func (s *AccountStore) FetchProfile(ctx context.Context, session domain.Session) domain.Result[domain.UserProfileView] {
	var view domain.UserProfileView
	err := s.tx.InReadOnlyTx(ctx, func(ctx context.Context) error {
		q := Conn(ctx, s.pool)
		account, err := scanAccount(q.QueryRow(ctx, `
			SELECT id, first_name, last_name, email, password_hash, birth_date,
			       role, country, phone, introduction, profile_image, created_at
			FROM accounts WHERE id = $1`,
			pgtype.UUID{Bytes: session.UserID, Valid: true},
		))
		if err != nil {
			return err
		}

		account.CategoryList, err = loadCategories(ctx, q, account.ID)
		if err != nil {
			return err
		}
		view = account.View()
		return nil
	})
	if err != nil {
		return domain.Failed[domain.UserProfileView](s.classify(ctx, "fetch profile", err))
	}
	return domain.Ok(view)
}

// Ping checks the database connection.
func (s *AccountStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// classify maps a database error onto a failure kind. A missing row means the
// session's user no longer exists.
func (s *AccountStore) classify(ctx context.Context, op string, err error) domain.Failure {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Failure{Kind: domain.FailureUnauthorized, Message: "account not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.Failure{Kind: domain.FailureRejected, Message: "email already registered"}
	}

	s.logger.ErrorContext(ctx, "account store query failed", "op", op, "error", err)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.Failure{Kind: domain.FailureTransport, Message: err.Error()}
	}
	return domain.Failure{Kind: domain.FailureTransport, Message: op + " failed"}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		id           pgtype.UUID
		birthDate    pgtype.Date
		role         string
		introduction pgtype.Text
		profileImage pgtype.Text
		account      domain.Account
	)
	err := row.Scan(
		&id,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.PasswordHash,
		&birthDate,
		&role,
		&account.Country,
		&account.Phone,
		&introduction,
		&profileImage,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.ID = id.Bytes
	account.BirthDate = utils.FromDate(birthDate)
	account.Role = domain.Role(role)
	account.Introduction = utils.FromNullString(introduction)
	account.ProfileImage = utils.FromNullString(profileImage)
	return &account, nil
}

func loadCategories(ctx context.Context, q Querier, accountID uuid.UUID) ([]string, error) {
	rows, err := q.Query(ctx,
		`SELECT category FROM account_categories WHERE account_id = $1 ORDER BY position`,
		pgtype.UUID{Bytes: accountID, Valid: true},
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
