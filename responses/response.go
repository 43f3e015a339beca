package responses

import "github.com/gofiber/fiber/v2"

// UserResponse is the JSON envelope every endpoint returns. Success mirrors
// whether Status is a 2xx; clients branch on it rather than on message text.
type UserResponse struct {
	Status  int        `json:"status"`
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Result  *fiber.Map `json:"result,omitempty"`
}
