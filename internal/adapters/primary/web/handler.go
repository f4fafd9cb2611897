// Package web serves the server-rendered account pages: the layout shell, the
// signup form and the profile summary with its password-gated edit entry.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	httpadapter "github.com/lorrc/mentor-portal/internal/adapters/primary/http"
	mw "github.com/lorrc/mentor-portal/internal/adapters/primary/http/middleware"
	"github.com/lorrc/mentor-portal/internal/adapters/primary/validation"
	"github.com/lorrc/mentor-portal/internal/auth"
	"github.com/lorrc/mentor-portal/internal/core/domain"
	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
	"github.com/lorrc/mentor-portal/internal/core/forms"
	"github.com/lorrc/mentor-portal/internal/core/ports"
)

// signupFlashCookie marks a fresh registration for the completion page.
const signupFlashCookie = "signup_complete"

const (
	msgProfileUnavailable = "We could not load your information."
	msgSignInRequired     = "Please sign in to continue."
)

// Options holds the presentation settings of the pages.
type Options struct {
	AppName        string
	Countries      []string
	Categories     []string
	SecureCookies  bool
	// AccountLimiter guards the form posts that reach the account backend.
	AccountLimiter *mw.RateLimiter
}

type layoutView struct {
	Title   string
	AppName string
	Year    int
}

type roleOption struct {
	Value string
	Label string
}

var roleOptions = []roleOption{
	{Value: string(domain.RoleMentor), Label: "Mentor"},
	{Value: string(domain.RoleMentee), Label: "Mentee"},
}

type signupView struct {
	layoutView
	Form       *forms.Form
	Input      domain.RegistrationInput
	Roles      []roleOption
	Countries  []string
	Categories []string
}

type completeView struct {
	layoutView
	Notification domain.Notification
}

type imageView struct {
	Src   string
	Alt   string
	Class string
}

type profileView struct {
	layoutView
	Summary      domain.ProfileSummary
	ProfileImage imageView
	Errors       []string
	DialogOpen   bool
	PasswordForm *forms.Form
}

type profileFixView struct {
	layoutView
	Profile *domain.UserProfileView
	Errors  []string
}

type errorView struct {
	layoutView
	Status  int
	Message string
}

// Handler serves the HTML pages.
type Handler struct {
	signup   ports.SignupService
	profile  ports.ProfileService
	tokens   *auth.TokenManager
	renderer *Renderer
	errors   *httpadapter.ErrorHandler
	opts     Options
	logger   *slog.Logger
}

// NewHandler creates a new page handler.
func NewHandler(
	signup ports.SignupService,
	profile ports.ProfileService,
	tokens *auth.TokenManager,
	renderer *Renderer,
	opts Options,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		signup:   signup,
		profile:  profile,
		tokens:   tokens,
		renderer: renderer,
		errors:   httpadapter.NewErrorHandler(logger),
		opts:     opts,
		logger:   logger.With("handler", "web"),
	}
}

// RegisterRoutes registers the pages. The /mypage routes require a session.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Handle("/static/*", Static())
	r.Get(domain.RouteHome, h.HandleHome)
	r.Get(domain.RouteSignup, h.HandleSignupForm)
	h.accountLimited(r).Post(domain.RouteSignup, h.HandleSignupSubmit)
	r.Get(domain.RouteSignupComplete, h.HandleSignupComplete)

	r.Group(func(r chi.Router) {
		r.Use(mw.SessionMiddleware(h.tokens, http.HandlerFunc(h.handleSignInRequired)))
		r.Get(domain.RouteProfile, h.HandleProfile)
		h.accountLimited(r).Post(domain.RouteProfileConfirm, h.HandlePasswordConfirm)
		r.Get(domain.RouteProfileEdit, h.HandleProfileEdit)
	})

	r.NotFound(h.handleNotFound)
}

func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, PageHome, h.layout("Home"))
}

// HandleSignupForm handles GET /signup.
func (h *Handler) HandleSignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, PageSignup, h.signupView(h.signup.NewForm(), domain.DefaultRegistrationInput()))
}

// HandleSignupSubmit handles POST /signup. A registered user is sent to the
// completion page with 303; any other outcome re-renders the form.
func (h *Handler) HandleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	out := h.signup.Submit(r.Context(), submissionFromForm(r))
	if out.Registered() {
		http.SetCookie(w, &http.Cookie{
			Name:     signupFlashCookie,
			Value:    "1",
			Path:     domain.RouteSignupComplete,
			MaxAge:   60,
			HttpOnly: true,
			Secure:   h.opts.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, domain.RouteSignupComplete, http.StatusSeeOther)
		return
	}

	status, _ := h.errors.Describe(out.Err)
	h.render(w, r, status, PageSignup, h.signupView(out.Form, out.Input))
}

// HandleSignupComplete shows the success notification once. Without a fresh
// registration it goes home.
func (h *Handler) HandleSignupComplete(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(signupFlashCookie); err != nil {
		http.Redirect(w, r, domain.RouteHome, http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:   signupFlashCookie,
		Path:   domain.RouteSignupComplete,
		MaxAge: -1,
	})

	h.render(w, r, http.StatusOK, PageSignupComplete, completeView{
		layoutView:   h.layout("Sign Up"),
		Notification: domain.SignupSucceeded(),
	})
}

// HandleProfile handles GET /mypage/information. ?edit=1 opens the password dialog.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := mw.SessionFromContext(r.Context())

	dialog := validation.ParseBoolQueryParam(r, "edit", false)
	view, status := h.profileView(r, session)
	view.DialogOpen = dialog
	view.PasswordForm = h.profile.NewPasswordForm()
	h.render(w, r, status, PageProfile, view)
}

// HandlePasswordConfirm handles the edit dialog submission. On success the edit
// grant cookie is set and the user is sent to the edit page.
func (h *Handler) HandlePasswordConfirm(w http.ResponseWriter, r *http.Request) {
	session, _ := mw.SessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	out := h.profile.ConfirmPassword(r.Context(), session, ports.PasswordConfirmationInput{
		Password: r.PostForm.Get("password"),
	})
	if out.Confirmed() {
		grant, err := h.tokens.GenerateEditGrant(session.UserID)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "edit grant signing failed", "error", err)
			h.renderError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		mw.SetEditGrantCookie(w, grant, h.tokens.GrantTTL(), h.opts.SecureCookies)
		http.Redirect(w, r, out.Redirect.Path, http.StatusSeeOther)
		return
	}

	view, status := h.profileView(r, session)
	if status == http.StatusOK {
		status, _ = h.errors.Describe(out.Err)
	}
	view.DialogOpen = true
	view.PasswordForm = out.Form
	h.render(w, r, status, PageProfile, view)
}

// HandleProfileEdit handles GET /mypage/information/fix. Without a valid edit
// grant the user is sent back to the password dialog.
func (h *Handler) HandleProfileEdit(w http.ResponseWriter, r *http.Request) {
	session, _ := mw.SessionFromContext(r.Context())

	if err := h.tokens.ValidateEditGrant(mw.EditGrantFromRequest(r), session.UserID); err != nil {
		h.logger.InfoContext(r.Context(), "edit page without grant", "error", err)
		http.Redirect(w, r, domain.RouteProfileEditGate, http.StatusSeeOther)
		return
	}

	view := profileFixView{layoutView: h.layout("Edit Information")}
	status := http.StatusOK
	profile, err := h.profile.Profile(r.Context(), session)
	if err != nil {
		status, _ = h.errors.Describe(err)
		view.Errors = []string{msgProfileUnavailable}
	}
	view.Profile = profile
	h.render(w, r, status, PageProfileFix, view)
}

func (h *Handler) profileView(r *http.Request, session domain.Session) (profileView, int) {
	view := profileView{layoutView: h.layout("My Information")}
	status := http.StatusOK

	summary, err := h.profile.Summary(r.Context(), session)
	if err != nil {
		status, _ = h.errors.Describe(err)
		view.Errors = []string{msgProfileUnavailable}
		if errors.Is(err, apperrors.ErrUnauthorized) {
			view.Errors = []string{msgSignInRequired}
		}
	}
	view.Summary = summary
	view.ProfileImage = imageView{
		Src:   summary.ProfileImage,
		Alt:   "Profile Image",
		Class: "w-7 rounded-full inline-block mb-2 ml-2",
	}
	return view, status
}

func (h *Handler) signupView(form *forms.Form, input domain.RegistrationInput) signupView {
	return signupView{
		layoutView: h.layout("Sign Up"),
		Form:       form,
		Input:      input,
		Roles:      roleOptions,
		Countries:  h.opts.Countries,
		Categories: h.opts.Categories,
	}
}

func (h *Handler) handleSignInRequired(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusUnauthorized, msgSignInRequired)
}

// HandleRateLimited renders the page shown to throttled browsers.
func (h *Handler) HandleRateLimited(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusTooManyRequests, apperrors.NewRateLimitError().Message)
}

func (h *Handler) accountLimited(r chi.Router) chi.Router {
	if h.opts.AccountLimiter == nil {
		return r
	}
	return r.With(h.opts.AccountLimiter.Limit(http.HandlerFunc(h.HandleRateLimited)))
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Page not found")
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, PageError, errorView{
		layoutView: h.layout(http.StatusText(status)),
		Status:     status,
		Message:    message,
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		h.logger.ErrorContext(r.Context(), "render failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) layout(title string) layoutView {
	return layoutView{
		Title:   title,
		AppName: h.opts.AppName,
		Year:    time.Now().Year(),
	}
}

func submissionFromForm(r *http.Request) ports.SignupSubmission {
	fields := make(map[string]string, len(r.PostForm))
	for name, values := range r.PostForm {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}
	return ports.SignupSubmission{
		Fields:     fields,
		BirthDate:  r.PostForm.Get("birthDate"),
		Role:       r.PostForm.Get("role"),
		Country:    r.PostForm.Get("country"),
		Categories: r.PostForm["categoryList"],
	}
}
