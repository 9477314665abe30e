package models

import "time"

type NoticeLevel string

const (
	LevelSuccess NoticeLevel = "success"
	LevelWarning NoticeLevel = "warning"
	LevelError   NoticeLevel = "error"
)

const (
	NoticeDuration = 3 * time.Second
	RedirectDelay  = time.Second
)

// Notice is a short-lived user-facing message.
type Notice struct {
	Message        string      `json:"message"`
	Level          NoticeLevel `json:"level"`
	DismissAfterMs int64       `json:"dismissAfterMs"`
}

func NewNotice(level NoticeLevel, message string) *Notice {
	return &Notice{
		Message:        message,
		Level:          level,
		DismissAfterMs: NoticeDuration.Milliseconds(),
	}
}

type Redirect struct {
	Page    string `json:"page"`
	AfterMs int64  `json:"afterMs"`
}

func NewRedirect(page string, after time.Duration) *Redirect {
	return &Redirect{Page: page, AfterMs: after.Milliseconds()}
}
