package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fitaafita/backend/models"
)

// UserRepository handles database operations for users. Soft-deleted
// accounts (active=false) are invisible to every default read; only
// FindByID, used by administrative paths, can still reach them.
type UserRepository struct {
	*Repository[models.User]
}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{newRepository[models.User]("users", bson.M{"active": bson.M{"$ne": false}})}
}

// FindActiveByID retrieves an active user by ID. Used by the auth guard so
// soft-deleted accounts can not authenticate.
func (r *UserRepository) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

// FindByEmail retrieves an active user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindOne(ctx, bson.M{"email": email})
}

// FindByResetToken retrieves the user holding an unexpired password reset
// token. The token arrives in plain form and is compared by hash.
func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.FindOne(ctx, bson.M{
		"passwordResetToken":   models.HashToken(token),
		"passwordResetExpires": bson.M{"$gt": time.Now()},
	})
}

// FindByConfirmToken retrieves the user holding an email confirmation token,
// expired or not; the caller decides what an expired token means.
func (r *UserRepository) FindByConfirmToken(ctx context.Context, token string) (*models.User, error) {
	return r.FindOne(ctx, bson.M{"emailConfirmToken": models.HashToken(token)})
}

// SetFields applies a partial update to a user document
func (r *UserRepository) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	return r.UpdateByID(ctx, id, fields)
}

// Deactivate soft-deletes a user account
func (r *UserRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().UpdateByID(ctx, id, bson.M{"$set": bson.M{"active": false}})
	return err
}

// SavePassword stores a new password hash, stamps passwordChangedAt slightly
// in the past so tokens issued in the same second stay valid, and clears any
// outstanding reset token.
func (r *UserRepository) SavePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	changedAt := time.Now().Add(-time.Second)
	_, err := r.coll().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"password":          passwordHash,
			"passwordChangedAt": changedAt,
		},
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
	})
	return err
}

// ClearConfirmToken marks an email-confirmed account active and removes the
// confirmation token.
func (r *UserRepository) ClearConfirmToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"active": true},
		"$unset": bson.M{
			"emailConfirmToken":   "",
			"emailConfirmExpires": "",
		},
	})
	return err
}

// HardDelete removes a user document entirely. Only used when an account
// fails email confirmation in time.
func (r *UserRepository) HardDelete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
