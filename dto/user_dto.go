package dto

import "github.com/fitaafita/backend/models"

// UpdateMeRequest is the self-service profile update. Password fields are
// deliberately absent; those go through the password endpoints.
type UpdateMeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// AdminCreateUserRequest creates a user account through the admin CRUD
type AdminCreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user guide lead-guide admin"`
}

// AdminUpdateUserRequest is the administrative partial user update
type AdminUpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Role   *string `json:"role" binding:"omitempty,oneof=user guide lead-guide admin"`
	Active *bool   `json:"active"`
}

// ApplyTo copies the set fields onto an existing user
func (r *AdminUpdateUserRequest) ApplyTo(user *models.User) {
	if r.Name != nil {
		user.Name = *r.Name
	}
	if r.Email != nil {
		user.Email = *r.Email
	}
	if r.Role != nil {
		user.Role = models.Role(*r.Role)
	}
	if r.Active != nil {
		user.Active = *r.Active
	}
}
