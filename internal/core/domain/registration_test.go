package domain_test

import (
	"testing"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBirthDate(t *testing.T) {
	t.Run("empty is null", func(t *testing.T) {
		got, err := domain.FormatBirthDate("  ")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("calendar date is kept", func(t *testing.T) {
		got, err := domain.FormatBirthDate("1990-12-31")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "1990-12-31", *got)
	})

	t.Run("timestamp is reduced to its date", func(t *testing.T) {
		got, err := domain.FormatBirthDate("1990-12-31T08:30:00Z")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "1990-12-31", *got)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		got, err := domain.FormatBirthDate("31/12/1990")
		assert.ErrorIs(t, err, apperrors.ErrInvalidBirthDate)
		assert.Nil(t, got)
	})
}

func TestNormalizeCategories(t *testing.T) {
	assert.Equal(t,
		[]string{"K-POP", "Game", "Art"},
		domain.NormalizeCategories([]string{" K-POP", "Game", "", "K-POP", "Art ", "Game"}),
	)
	assert.Empty(t, domain.NormalizeCategories(nil))
}

func TestParseRole(t *testing.T) {
	role, ok := domain.ParseRole("MENTEE")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleMentee, role)

	_, ok = domain.ParseRole("mentor")
	assert.False(t, ok)
}

func TestNewRegisterRequest(t *testing.T) {
	birth := "2000-01-02"
	in := domain.RegistrationInput{
		FirstName:            " Min ",
		LastName:             "Kim",
		Email:                " min@example.com ",
		Password:             "Passw0rd!",
		PasswordConfirmation: "Passw0rd!",
		Role:                 domain.RoleMentor,
		Country:              "South Korea",
		CategoryList:         []string{"Game", "Game"},
		Phone:                "010-0000-0000",
	}

	req := domain.NewRegisterRequest(in, "KR", &birth)

	assert.Equal(t, "Min", req.FirstName)
	assert.Equal(t, "min@example.com", req.Email)
	assert.Equal(t, "KR", req.Country)
	assert.Equal(t, &birth, req.BirthDate)
	assert.Equal(t, []string{"Game"}, req.CategoryList)
	assert.Nil(t, req.Introduction)
	assert.Nil(t, req.ProfileImage)
}

func TestDefaultRegistrationInput(t *testing.T) {
	in := domain.DefaultRegistrationInput()

	assert.Equal(t, "United States", in.Country)
	assert.Equal(t, domain.RoleMentor, in.Role)
	assert.True(t, in.HasCategory("K-POP"))
	assert.True(t, in.HasCategory("Game"))
	assert.False(t, in.HasCategory("Art"))
}

func TestRegisterReceipt_Succeeded(t *testing.T) {
	assert.True(t, domain.RegisterReceipt{Status: "success"}.Succeeded())
	assert.False(t, domain.RegisterReceipt{Status: "fail"}.Succeeded())
	assert.False(t, domain.RegisterReceipt{}.Succeeded())
}
