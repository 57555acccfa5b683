package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("clinician@example.com", "averylongpassword")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != "clinician@example.com" {
		t.Errorf("Expected email clinician@example.com, got %s", user.Email)
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Invalid inputs map to their sentinels
	if _, err := NewUser("", "averylongpassword"); err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	if _, err := NewUser("not-an-email", "averylongpassword"); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	if _, err := NewUser("clinician@example.com", "short"); err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	validUser := User{
		ID:             uuid.New(),
		Email:          "clinician@example.com",
		HashedPassword: "$2a$10$somethinghashed",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalid := validUser
	invalid.ID = uuid.Nil
	if err := invalid.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	invalid = validUser
	invalid.HashedPassword = ""
	if err := invalid.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	invalid = validUser
	invalid.Password = string(make([]byte, 73))
	if err := invalid.Validate(); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestValidEmailFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"a@b.co":          true,
		"user@domain.org": true,
		"@domain.org":     false,
		"user@":           false,
		"user@domain":     false,
		"user@.org":       false,
		"user@domain.":    false,
		"plainstring":     false,
	}

	for email, want := range cases {
		if got := validEmailFormat(email); got != want {
			t.Errorf("validEmailFormat(%q) = %v, want %v", email, got, want)
		}
	}
}
