package dto

// APIResponse is the success envelope of every upload endpoint.
type APIResponse[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
}

// ErrorResponse documents the shape written by the error handler.
type ErrorResponse struct {
	Error   string `json:"error" example:"NO_UPLOADED_PARTS"`
	Message string `json:"message"`
	Status  int    `json:"status" example:"400"`
}

// ValidationErrorResponse documents the 400 body for field validation failures.
type ValidationErrorResponse struct {
	Success bool              `json:"success" example:"false"`
	Errors  map[string]string `json:"errors"`
	Message string            `json:"message" example:"validation errors"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Env     string `json:"env"`
}
