package models

// APIResponse is the envelope every endpoint returns. Field names are
// PascalCase to match the original client contract ("Success", "Data", ...).
type APIResponse struct {
	Success bool        `json:"Success"`
	Data    interface{} `json:"Data,omitempty"`
	Error   string      `json:"Error,omitempty"`
	Message string      `json:"Message,omitempty"`
}

func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

func ErrorResponse(err string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   err,
	}
}

func MessageResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}
