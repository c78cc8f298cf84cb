package api

// Common request/response structures. Due dates travel as "YYYY-MM-DD"
// strings and are parsed at the handler boundary.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	Token string `json:"token"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"omitempty"`
	DueDate     string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTaskRequest defines the payload for a partial task update. Absent or
// empty fields leave the stored values unchanged.
type UpdateTaskRequest struct {
	Name        string `json:"name"        validate:"omitempty"`
	Description string `json:"description" validate:"omitempty"`
	DueDate     string `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}
