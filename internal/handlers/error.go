package handlers

// ErrorResponse is the JSON body every handler returns on failure.
// It carries a single human-readable message.
type ErrorResponse struct {
	Message string `json:"message"`
}
