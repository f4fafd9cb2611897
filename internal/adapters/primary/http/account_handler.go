package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/lorrc/mentor-portal/internal/adapters/primary/http/middleware"
	"github.com/lorrc/mentor-portal/internal/adapters/primary/validation"
	"github.com/lorrc/mentor-portal/internal/auth"
	"github.com/lorrc/mentor-portal/internal/core/domain"
	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
	"github.com/lorrc/mentor-portal/internal/core/forms"
	"github.com/lorrc/mentor-portal/internal/core/ports"
)

const maxCategories = 10

// SignupRequest is the JSON body of POST /signup.
type SignupRequest struct {
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	PasswordCheck string   `json:"passwordcheck"`
	Phone         string   `json:"phone"`
	BirthDate     string   `json:"birthDate"`
	Role          string   `json:"role"`
	Country       string   `json:"country"`
	CategoryList  []string `json:"categoryList"`
}

// Validate checks the request shape; field rules run in the signup service.
func (r *SignupRequest) Validate() error {
	v := validation.NewValidator()
	v.OneOf("role", r.Role, []string{string(domain.RoleMentor), string(domain.RoleMentee)})
	v.MaxLength("country", r.Country, 100)
	v.Custom("categoryList", len(r.CategoryList) <= maxCategories, "Choose at most 10 categories")
	return v.Err()
}

func (r *SignupRequest) submission() ports.SignupSubmission {
	return ports.SignupSubmission{
		Fields: map[string]string{
			"firstName":     r.FirstName,
			"lastName":      r.LastName,
			"email":         r.Email,
			"password":      r.Password,
			"passwordcheck": r.PasswordCheck,
			"phone":         r.Phone,
		},
		BirthDate:  r.BirthDate,
		Role:       r.Role,
		Country:    r.Country,
		Categories: r.CategoryList,
	}
}

// SignupResponse is returned when a registration is accepted.
type SignupResponse struct {
	Status       string              `json:"status"`
	Notification domain.Notification `json:"notification"`
}

// PasswordCheckRequest is the JSON body of POST /me/password-check.
type PasswordCheckRequest struct {
	Password string `json:"password"`
}

// PasswordCheckResponse is returned when the password is confirmed. The grant
// is also set as a cookie scoped to the edit page.
type PasswordCheckResponse struct {
	Redirect  domain.Redirect `json:"redirect"`
	EditGrant string          `json:"editGrant"`
}

// FormErrorResponse carries per-field and form-level messages.
type FormErrorResponse struct {
	Error      string            `json:"error"`
	Code       string            `json:"code"`
	Fields     map[string]string `json:"fields,omitempty"`
	FormErrors []string          `json:"formErrors,omitempty"`
}

// AccountHandler serves the JSON variant of the account workflows.
type AccountHandler struct {
	signup        ports.SignupService
	profile       ports.ProfileService
	tokens        *auth.TokenManager
	errorHandler  *ErrorHandler
	secureCookies bool
	logger        *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(
	signup ports.SignupService,
	profile ports.ProfileService,
	tokens *auth.TokenManager,
	errorHandler *ErrorHandler,
	secureCookies bool,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		signup:        signup,
		profile:       profile,
		tokens:        tokens,
		errorHandler:  errorHandler,
		secureCookies: secureCookies,
		logger:        logger.With("handler", "account"),
	}
}

// RegisterPublicRoutes registers routes that need no session.
func (h *AccountHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/signup", h.HandleSignup)
}

// RegisterRoutes registers the /me routes. They expect the session middleware.
func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Get("/me/summary", h.HandleSummary)
	r.Post("/me/password-check", h.HandlePasswordCheck)
	r.Get("/me/profile", h.HandleEditProfile)
}

// HandleSignup handles POST /signup.
func (h *AccountHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[SignupRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	out := h.signup.Submit(r.Context(), req.submission())
	if !out.Registered() {
		h.writeFormFailure(w, r, out.Err, out.Form)
		return
	}

	writePrivate(w, http.StatusCreated, SignupResponse{
		Status:       domain.StatusSuccess,
		Notification: *out.Notification,
	})
}

// HandleSummary handles GET /me/summary.
func (h *AccountHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	summary, err := h.profile.Summary(r.Context(), session)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	writePrivate(w, http.StatusOK, DataResponse[domain.ProfileSummary]{Data: summary})
}

// HandlePasswordCheck handles POST /me/password-check.
func (h *AccountHandler) HandlePasswordCheck(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[PasswordCheckRequest](r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	out := h.profile.ConfirmPassword(r.Context(), session, ports.PasswordConfirmationInput{Password: req.Password})
	if !out.Confirmed() {
		h.writeFormFailure(w, r, out.Err, out.Form)
		return
	}

	grant, err := h.tokens.GenerateEditGrant(session.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err))
		return
	}
	mw.SetEditGrantCookie(w, grant, h.tokens.GrantTTL(), h.secureCookies)

	writePrivate(w, http.StatusOK, PasswordCheckResponse{
		Redirect:  *out.Redirect,
		EditGrant: grant,
	})
}

// HandleEditProfile handles GET /me/profile, the record behind the edit page.
// It needs the grant a password check hands out.
func (h *AccountHandler) HandleEditProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.tokens.ValidateEditGrant(mw.EditGrantFromRequest(r), session.UserID); err != nil {
		h.errorHandler.Handle(w, r, fmt.Errorf("%w: %v", apperrors.ErrEditGrantRequired, err))
		return
	}

	profile, err := h.profile.Profile(r.Context(), session)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	writePrivate(w, http.StatusOK, DataResponse[*domain.UserProfileView]{Data: profile})
}

func (h *AccountHandler) writeFormFailure(w http.ResponseWriter, r *http.Request, err error, form *forms.Form) {
	if err == nil {
		err = apperrors.ErrInternal
	}
	status, body := h.errorHandler.Describe(err)

	h.logger.WarnContext(r.Context(), "form rejected",
		"path", r.URL.Path,
		"status_code", status,
		"error", err.Error(),
	)

	resp := FormErrorResponse{Error: body.Error, Code: body.Code}
	if form != nil {
		resp.FormErrors = form.FormErrors()
		for name, msgs := range form.ValidationErrors().Errors {
			if name == "form" {
				continue
			}
			if resp.Fields == nil {
				resp.Fields = make(map[string]string)
			}
			resp.Fields[name] = msgs[0]
		}
	}
	writePrivate(w, status, resp)
}

func (h *AccountHandler) session(w http.ResponseWriter, r *http.Request) (domain.Session, bool) {
	session, ok := mw.SessionFromContext(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.NewUnauthorizedError("Not authorized"))
		return domain.Session{}, false
	}
	return session, true
}
