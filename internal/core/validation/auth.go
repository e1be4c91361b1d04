package validation

import (
	"strings"

	"github.com/99minutos/task-manager/internal/core/ports"
)

// RegisterRequest is the registration body.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"omitempty,max=50"`
	LastName  string `json:"lastName"  validate:"omitempty,max=50"`
	Email     string `json:"email"     validate:"required,email,min=5"`
	Password  string `json:"password"  validate:"required,min=6"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,min=5"`
	Password string `json:"password" validate:"required,min=6"`
}

// Registration validates a registration body. Names and email are trimmed;
// the password is taken verbatim.
func (val *Validator) Registration(req RegisterRequest) (ports.RegisterInput, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	if err := val.Validate(&req); err != nil {
		return ports.RegisterInput{}, err
	}
	return ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}, nil
}

// Login validates a login body.
func (val *Validator) Login(req LoginRequest) (ports.LoginInput, error) {
	req.Email = strings.TrimSpace(req.Email)

	if err := val.Validate(&req); err != nil {
		return ports.LoginInput{}, err
	}
	return ports.LoginInput{Email: req.Email, Password: req.Password}, nil
}
