package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	type form struct {
		Email      string `validate:"required,email"`
		CategoryID int64  `validate:"gt=0"`
	}

	err := v.Validate(&form{Email: "not-an-email", CategoryID: -1})
	if err == nil {
		t.Fatalf("expected a validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "email must be a valid email") {
		t.Fatalf("missing email message: %q", msg)
	}
	if !strings.Contains(msg, "categoryid must be greater than 0") {
		t.Fatalf("missing gt message: %q", msg)
	}
}
