package api

import (
	"github.com/phrazzld/smarttask/internal/domain"
)

// CredentialsRequest is the payload of the register and login endpoints.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateTaskRequest is the payload of POST /tasks.
// The deadline is checked against today by the service.
type CreateTaskRequest struct {
	Title      string      `json:"title"      validate:"required,max=200"`
	Deadline   domain.Date `json:"deadline"`
	Importance int         `json:"importance" validate:"required,min=1,max=10"`
	Complexity int         `json:"complexity" validate:"required,gt=0"`
}

// ToInput converts the request to a domain TaskInput.
func (r CreateTaskRequest) ToInput() domain.TaskInput {
	return domain.TaskInput{
		Title:      r.Title,
		Deadline:   r.Deadline,
		Importance: r.Importance,
		Complexity: r.Complexity,
	}
}
