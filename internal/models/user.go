package models

// MakeAdminRequest is the body of PUT /users/admin.
type MakeAdminRequest struct {
	Email string `json:"email" validate:"required"`
}

// AdminStatus is the answer of the admin check.
type AdminStatus struct {
	Admin bool `json:"admin"`
}
