package handler

import "github.com/99minutos/task-manager/internal/core/domain"

type messageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}
