package domain

// Page routes the account flows navigate between.
const (
	RouteHome            = "/"
	RouteSignup          = "/signup"
	RouteSignupComplete  = "/signup/complete"
	RouteProfile         = "/mypage/information"
	RouteProfileConfirm  = "/mypage/information/confirm"
	RouteProfileEdit     = "/mypage/information/fix"
	RouteProfileEditGate = RouteProfile + "?edit=1"
)

// Redirect is a navigation instruction. Replace drops the current page from history.
type Redirect struct {
	Path    string `json:"path"`
	Replace bool   `json:"replace"`
}

// Notification is a dismissible message with one action.
// Both the action and dismissal follow Dismiss.
type Notification struct {
	Message     string   `json:"message"`
	ActionLabel string   `json:"action"`
	Dismiss     Redirect `json:"redirect"`
}

// SignupSucceeded is shown once a registration is accepted.
func SignupSucceeded() Notification {
	return Notification{
		Message:     "Sign up success",
		ActionLabel: "OKAY",
		Dismiss:     Redirect{Path: RouteHome, Replace: true},
	}
}
