package ports

import (
	"context"
)

// SignupInput is the DTO passed from the transport layer to AuthService.Signup.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the DTO passed from the transport layer to AuthService.Login.
type LoginInput struct {
	Email    string
	Password string
}

// AuthOutput is returned by both signup and login.
type AuthOutput struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, in LoginInput) (*AuthOutput, error)
}
