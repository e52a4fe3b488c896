package employee

import (
	"strings"

	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Email              string  `json:"email"`
	Password           string  `json:"password"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	PhoneNumber        *string `json:"phone_number,omitempty"`
	Role               string  `json:"role,omitempty"`
	EmployeeIdentifier string  `json:"employee_identifier,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email format is invalid"})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "phone_number format is invalid"})
	}

	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	} else if !validator.IsInSlice(strings.ToLower(r.Role), user.ValidRoles()) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: admin, manager, employee"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Password    *string `json:"password,omitempty"`
	Role        *string `json:"role,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name cannot be empty"})
	}

	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name cannot be empty"})
	}

	if r.PhoneNumber != nil && *r.PhoneNumber != "" && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "phone_number format is invalid"})
	}

	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if r.Role != nil && !validator.IsInSlice(strings.ToLower(*r.Role), user.ValidRoles()) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of: admin, manager, employee"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeesRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
}

func (r *ListEmployeesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if r.Page == 0 {
		r.Page = 1
	}

	if r.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if r.Limit == 0 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeesResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Employees  []user.UserResponse `json:"employees"`
}
