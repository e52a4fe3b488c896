package user

import "time"

type UserResponse struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	EmployeeIdentifier string  `json:"employee_identifier"`
	PhoneNumber        *string `json:"phone_number,omitempty"`
	Role               string  `json:"role"`
	IsActive           bool    `json:"is_active"`
	LastLoginAt        *string `json:"last_login_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ToResponse strips credential fields before a user leaves the API.
func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		EmployeeIdentifier: u.EmployeeIdentifier,
		PhoneNumber:        u.PhoneNumber,
		Role:               string(u.Role),
		IsActive:           u.IsActive,
		CreatedAt:          u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          u.UpdatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		formatted := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &formatted
	}
	return resp
}
