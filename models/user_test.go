package models

import (
	"testing"
	"time"
)

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	if err := user.SetPassword("pass1234"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}

	if user.Password == "pass1234" {
		t.Fatal("password stored in plain text")
	}
	if !user.CorrectPassword("pass1234") {
		t.Error("correct password rejected")
	}
	if user.CorrectPassword("wrong-pass") {
		t.Error("wrong password accepted")
	}
}

func TestChangedPasswordAfter(t *testing.T) {
	issued := time.Now()

	t.Run("never changed", func(t *testing.T) {
		user := &User{}
		if user.ChangedPasswordAfter(issued) {
			t.Error("expected false when password was never changed")
		}
	})

	t.Run("changed before token issue", func(t *testing.T) {
		changed := issued.Add(-time.Hour)
		user := &User{PasswordChangedAt: &changed}
		if user.ChangedPasswordAfter(issued) {
			t.Error("expected false for a change before issue time")
		}
	})

	t.Run("changed after token issue", func(t *testing.T) {
		changed := issued.Add(time.Hour)
		user := &User{PasswordChangedAt: &changed}
		if !user.ChangedPasswordAfter(issued) {
			t.Error("expected true for a change after issue time")
		}
	})
}

func TestCreatePasswordResetToken(t *testing.T) {
	user := &User{}
	before := time.Now()

	plain, err := user.CreatePasswordResetToken()
	if err != nil {
		t.Fatalf("CreatePasswordResetToken failed: %v", err)
	}

	if len(plain) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(plain))
	}
	if user.PasswordResetToken == plain {
		t.Error("token stored unhashed")
	}
	if user.PasswordResetToken != HashToken(plain) {
		t.Error("stored token is not the SHA-256 of the plain token")
	}

	if user.PasswordResetExpires == nil {
		t.Fatal("expected reset expiry to be set")
	}
	ttl := user.PasswordResetExpires.Sub(before)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Errorf("expected roughly 10 minute expiry, got %v", ttl)
	}
}

func TestCreateEmailConfirmToken(t *testing.T) {
	user := &User{}

	plain, err := user.CreateEmailConfirmToken()
	if err != nil {
		t.Fatalf("CreateEmailConfirmToken failed: %v", err)
	}

	if user.EmailConfirmToken != HashToken(plain) {
		t.Error("stored token is not the SHA-256 of the plain token")
	}
	if user.EmailConfirmExpires == nil {
		t.Error("expected confirm expiry to be set")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin} {
		if !ValidRole(role) {
			t.Errorf("expected %q to be valid", role)
		}
	}
	if ValidRole("superadmin") {
		t.Error("expected unknown role to be invalid")
	}
}
