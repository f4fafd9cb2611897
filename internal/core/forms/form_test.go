package forms_test

import (
	"testing"

	"github.com/lorrc/mentor-portal/internal/core/domain"
	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
	"github.com/lorrc/mentor-portal/internal/core/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFields() []forms.FieldDescriptor {
	return []forms.FieldDescriptor{
		{
			Name:  "firstName",
			Label: "First Name",
			Group: "name",
			Rules: []forms.Rule{{Tag: "required", Message: "Please enter your first name"}},
		},
		{
			Name:  "lastName",
			Label: "Last Name",
			Group: "name",
			Rules: []forms.Rule{{Tag: "required", Message: "Please enter your last name"}},
		},
		{
			Name:  "email",
			Label: "Email",
			Type:  "email",
			Rules: []forms.Rule{
				{Tag: "required", Message: "Please enter your email"},
				{Tag: "email", Message: "Please enter a valid email address"},
			},
		},
		{
			Name: "password",
			Type: "password",
			Rules: []forms.Rule{
				{Tag: "required", Message: forms.PasswordRequiredMessage},
				{Tag: "account_password", Message: forms.PasswordPatternMessage},
			},
		},
		{
			Name:  "phone",
			Type:  "tel",
			Rules: []forms.Rule{{Tag: "omitempty,phone", Message: "Please enter a valid phone number"}},
		},
	}
}

func TestForm_Validate(t *testing.T) {
	engine := forms.NewEngine()

	t.Run("first failing rule wins", func(t *testing.T) {
		form := forms.New(testFields())

		ok := form.Validate(engine)

		assert.False(t, ok)
		assert.Equal(t, "Please enter your first name", form.Error("firstName"))
		assert.Equal(t, "Please enter your email", form.Error("email"))
		assert.Equal(t, forms.PasswordRequiredMessage, form.Error("password"))
		assert.Empty(t, form.Error("phone"), "optional field stays clean when empty")
	})

	t.Run("pattern rules run after required", func(t *testing.T) {
		form := forms.New(testFields())
		form.Fill(map[string]string{
			"firstName": "Jane",
			"lastName":  "Doe",
			"email":     "not-an-email",
			"password":  "password",
			"phone":     "call me",
		})

		assert.False(t, form.Validate(engine))
		assert.Empty(t, form.Error("firstName"))
		assert.Equal(t, "Please enter a valid email address", form.Error("email"))
		assert.Equal(t, forms.PasswordPatternMessage, form.Error("password"))
		assert.Equal(t, "Please enter a valid phone number", form.Error("phone"))
	})

	t.Run("valid values clear earlier errors", func(t *testing.T) {
		form := forms.New(testFields())
		require.False(t, form.Validate(engine))

		form.Fill(map[string]string{
			"firstName": "Jane",
			"lastName":  "Doe",
			"email":     "jane@example.com",
			"password":  "Passw0rd!",
			"phone":     "010-1234-5678",
		})

		assert.True(t, form.Validate(engine))
		assert.True(t, form.Valid())
	})
}

func TestForm_FillTrimsEmail(t *testing.T) {
	form := forms.New(testFields())
	form.Fill(map[string]string{
		"firstName": " Jane ",
		"lastName":  "Doe",
		"email":     " jane@example.com\t",
		"password":  " Passw0rd!",
	})

	assert.Equal(t, "jane@example.com", form.Value("email"))
	assert.Equal(t, " Jane ", form.Value("firstName"))
	assert.Equal(t, " Passw0rd!", form.Value("password"))

	assert.False(t, form.Validate(forms.NewEngine()))
	assert.Empty(t, form.Error("email"))
	assert.Equal(t, forms.PasswordPatternMessage, form.Error("password"))
}

func TestForm_Errors(t *testing.T) {
	form := forms.New(testFields())

	form.SetError("country", "Please select a country")
	assert.Equal(t, "Please select a country", form.Error("country"))
	assert.False(t, form.Valid())

	form.ClearError("country")
	assert.True(t, form.Valid())

	form.AddFormError("Sign up failed. Please try again.")
	assert.False(t, form.Valid())
	assert.Equal(t, []string{"Sign up failed. Please try again."}, form.FormErrors())

	form.SetError("email", "taken")
	verrs := form.ValidationErrors()
	assert.Equal(t, "taken", verrs.First("email"))
	assert.Equal(t, "Sign up failed. Please try again.", verrs.First("form"))
}

func TestForm_Groups(t *testing.T) {
	form := forms.New(testFields())
	form.Fill(map[string]string{"firstName": "Jane", "unknown": "ignored"})
	form.SetError("lastName", "Please enter your last name")

	names := form.Group("name")
	require.Len(t, names, 2)
	assert.Equal(t, "Jane", names[0].Value)
	assert.True(t, names[1].Invalid())

	rest := form.Group("")
	require.Len(t, rest, 3)
	assert.Equal(t, "email", rest[0].Name)

	assert.Len(t, form.Bindings(), 5)
	assert.Empty(t, form.Value("unknown"))
	assert.True(t, names[0].Required())
}

func TestEngine_Struct(t *testing.T) {
	engine := forms.NewEngine()
	birth := "1999-02-30"

	req := domain.RegisterRequest{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		Password:     "password",
		Role:         "ADMIN",
		Country:      "USA",
		BirthDate:    &birth,
		CategoryList: []string{"Game", ""},
	}

	err := engine.Struct(req)

	var verrs *apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, forms.PasswordPatternMessage, verrs.First("password"))
	assert.Equal(t, "Must be one of: MENTOR, MENTEE", verrs.First("role"))
	assert.Equal(t, "Must be exactly 2 characters", verrs.First("country"))
	assert.Equal(t, "Please enter a valid date", verrs.First("birthDate"))
	assert.Equal(t, "This field is required", verrs.First("categoryList[1]"))
	assert.Empty(t, verrs.First("phone"))

	valid := req
	valid.Password = "Passw0rd!"
	valid.Role = domain.RoleMentor
	valid.Country = "US"
	valid.BirthDate = nil
	valid.CategoryList = []string{"Game"}
	assert.NoError(t, engine.Struct(valid))
}
