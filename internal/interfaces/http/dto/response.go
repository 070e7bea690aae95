package dto

// Response is the dashboard API envelope
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names one invalid field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a 400 body listing the invalid fields
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// Marketplace responses are flat JSON objects.

// MarketplaceError is the error body of the marketplace endpoints
type MarketplaceError struct {
	Error   string             `json:"error"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// TokenResponse is the body of a successful token exchange
type TokenResponse struct {
	Token string `json:"token"`
}

// OrderCreatedResponse is the body of an accepted webhook delivery
type OrderCreatedResponse struct {
	Message      string `json:"message"`
	Order        any    `json:"order"`
	EmailWarning string `json:"emailWarning,omitempty"`
}

// EmailResult is the body of the email endpoints
type EmailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TicketSyncResponse is the body of the ticket sync endpoint
type TicketSyncResponse struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}
