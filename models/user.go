package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Role represents user role types
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// TokenTTL is how long password-reset and email-confirmation tokens stay valid
const TokenTTL = 10 * time.Minute

// User represents a user account. Password is never serialized; Active=false
// means soft-deleted and excluded from default reads.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Email                string             `bson:"email" json:"email"`
	Photo                string             `bson:"photo" json:"photo"`
	Role                 Role               `bson:"role" json:"role"`
	Password             string             `bson:"password" json:"-"`
	Active               bool               `bson:"active" json:"-"`
	PasswordChangedAt    *time.Time         `bson:"passwordChangedAt,omitempty" json:"-"`
	PasswordResetToken   string             `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetExpires *time.Time         `bson:"passwordResetExpires,omitempty" json:"-"`
	EmailConfirmToken    string             `bson:"emailConfirmToken,omitempty" json:"-"`
	EmailConfirmExpires  *time.Time         `bson:"emailConfirmExpires,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}

// SetID stores the database-generated identifier
func (u *User) SetID(id primitive.ObjectID) {
	u.ID = id
}

// SetPassword hashes and stores the given password with cost 12
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CorrectPassword compares a candidate password against the stored hash
func (u *User) CorrectPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before a password change are stale.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}

// CreatePasswordResetToken generates a reset token, stores only its SHA-256
// hash with a 10-minute expiry, and returns the plain token for the email.
func (u *User) CreatePasswordResetToken() (string, error) {
	token, hashed, err := randomToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(TokenTTL)
	u.PasswordResetToken = hashed
	u.PasswordResetExpires = &expires
	return token, nil
}

// CreateEmailConfirmToken generates an email confirmation token, stored
// hashed and time-boxed the same way as reset tokens.
func (u *User) CreateEmailConfirmToken() (string, error) {
	token, hashed, err := randomToken()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(TokenTTL)
	u.EmailConfirmToken = hashed
	u.EmailConfirmExpires = &expires
	return token, nil
}

// HashToken returns the hex SHA-256 of a plain token, the form tokens are
// stored and looked up in.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func randomToken() (plain, hashed string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashToken(plain), nil
}
