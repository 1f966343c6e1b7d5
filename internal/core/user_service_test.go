package core

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"testing"
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestUserService_Authenticate(t *testing.T) {
	userRow := Row{
		"id":       int64(7),
		"loccode":  "L01",
		"username": "jdoe",
		"password": md5Hex("secret123"),
		"roleid":   int64(2),
	}

	tests := []struct {
		name       string
		row        Row
		email      string
		password   string
		wantReason string
	}{
		{"short password rejected early", nil, "jdoe@example.com", "x",
			"Your password must be at least 4 characters long!"},
		{"unknown email", nil, "nobody@example.com", "secret123",
			"Invalid Email Address!"},
		{"wrong password", userRow, "jdoe@example.com", "wrongpass",
			"Invalid Password!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			if tt.row != nil {
				exec.oneRows = []Row{tt.row}
			}
			svc := &userService{exec: exec}

			_, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			var credErr *CredentialError
			if !errors.As(err, &credErr) {
				t.Fatalf("expected CredentialError, got %v", err)
			}
			if credErr.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", credErr.Reason, tt.wantReason)
			}
		})
	}

	t.Run("valid credentials", func(t *testing.T) {
		exec := &fakeExecutor{oneRows: []Row{userRow}}
		svc := &userService{exec: exec}

		result, err := svc.Authenticate(context.Background(), "jdoe@example.com", "secret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsSuccess != 1 || result.Success != 1 {
			t.Errorf("success flags = %d/%d, want 1/1", result.IsSuccess, result.Success)
		}
		if result.UserID != 7 || result.LocCode != "L01" || result.Username != "jdoe" || result.RoleID != 2 {
			t.Errorf("unexpected result: %+v", result)
		}
		if got := exec.args[0]; len(got) != 1 || got[0] != "jdoe@example.com" {
			t.Errorf("query args = %v, want email only", got)
		}
	})
}
