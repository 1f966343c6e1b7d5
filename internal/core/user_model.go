package core

import "fmt"

// User is one row of the legacy users table, as far as login needs it.
type User struct {
	ID       int64
	LocCode  string
	Username string
	Password string // MD5 hex digest, legacy scheme
	RoleID   int64
}

// LoginResult mirrors the legacy login payload. IsSuccess and Success carry
// the same value under two keys because existing clients read both.
type LoginResult struct {
	IsSuccess int    `json:"issuccess"`
	Success   int    `json:"success"`
	UserID    int64  `json:"userid,omitempty"`
	LocCode   string `json:"loccode,omitempty"`
	Username  string `json:"username,omitempty"`
	RoleID    int64  `json:"roleid,omitempty"`
	Message   string `json:"message"`
}

// CredentialError reports a failed login attempt. Reason is the
// client-facing message.
type CredentialError struct {
	Reason string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}
