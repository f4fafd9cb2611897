package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
)

// Account is a registered user as the embedded backend stores it.
type Account struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	BirthDate    *string
	Role         Role
	Country      string
	Phone        string
	Introduction *string
	ProfileImage *string
	CategoryList []string
	CreatedAt    time.Time
}

// CheckPassword verifies if the provided password matches the stored hash
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// View projects the account onto the profile page model.
func (a *Account) View() UserProfileView {
	return UserProfileView{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		BirthDate:    deref(a.BirthDate),
		Phone:        a.Phone,
		Country:      a.Country,
		Introduction: deref(a.Introduction),
		Role:         a.Role,
		ProfileImage: deref(a.ProfileImage),
		CategoryList: append([]string(nil), a.CategoryList...),
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	if !IsAccountPassword(password) {
		return "", apperrors.ErrPasswordRequired
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewAccount creates an account from an already validated registration payload.
func NewAccount(req RegisterRequest) (*Account, error) {
	if _, ok := ParseRole(string(req.Role)); !ok {
		return nil, apperrors.ErrInvalidRole
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return &Account{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		BirthDate:    req.BirthDate,
		Role:         req.Role,
		Country:      req.Country,
		Phone:        req.Phone,
		Introduction: req.Introduction,
		ProfileImage: req.ProfileImage,
		CategoryList: NormalizeCategories(req.CategoryList),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
