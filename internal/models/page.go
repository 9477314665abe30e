package models

type AccessOutcome string

const (
	AccessAllow         AccessOutcome = "allow"
	AccessRedirectLogin AccessOutcome = "redirect_login"
	AccessRedirectHome  AccessOutcome = "redirect_home"
)

const (
	PageHome     = "index.html"
	PageLogin    = "login.html"
	PageRegister = "register.html"
)

type PageAccess struct {
	Page     string        `json:"page"`
	Outcome  AccessOutcome `json:"outcome"`
	Redirect *Redirect     `json:"redirect,omitempty"`
	Notice   *Notice       `json:"notice,omitempty"`
}

// Navigation is the navbar state for a client with an active session.
type Navigation struct {
	LoggedIn      bool   `json:"loggedIn"`
	UserName      string `json:"userName,omitempty"`
	ShowAdminLink bool   `json:"showAdminLink"`
}

type PageResponse struct {
	Access     PageAccess `json:"access"`
	Navigation Navigation `json:"navigation"`
	CartBadge  Badge      `json:"cartBadge"`
}
