package core

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const queryUserByEmail = `
	SELECT id, loccode, username, password, type AS roleid
	FROM users
	WHERE email = $1 AND active = '1'
	LIMIT 1`

// UserService authenticates legacy accounts. Passwords are stored as MD5 hex
// digests in the existing users table, so verification follows the same
// scheme until the table is migrated.
type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*LoginResult, error)
}

type userService struct {
	exec Executor
}

// NewUserService constructs a UserService backed by the given query executor.
func NewUserService(exec Executor) UserService {
	return &userService{exec: exec}
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	// Legacy guard kept verbatim, message and all.
	if len(password) < 2 {
		return nil, &CredentialError{Reason: "Your password must be at least 4 characters long!"}
	}

	row, err := s.exec.SelectOne(ctx, queryUserByEmail, email)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &CredentialError{Reason: "Invalid Email Address!"}
	}

	sum := md5.Sum([]byte(password))
	digest := hex.EncodeToString(sum[:])
	stored := strings.ToLower(rowString(row, "password"))
	if digest != stored {
		return nil, &CredentialError{Reason: "Invalid Password!"}
	}

	return &LoginResult{
		IsSuccess: 1,
		Success:   1,
		UserID:    rowInt(row, "id"),
		LocCode:   rowString(row, "loccode"),
		Username:  rowString(row, "username"),
		RoleID:    rowInt(row, "roleid"),
		Message:   "You have successfully logged in.",
	}, nil
}
