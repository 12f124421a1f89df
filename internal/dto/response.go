package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

type ValidationResponse struct {
	BasicResponse
	Fields map[string]string `json:"fields"`
}

func NewValidationResponse(details string, fields map[string]string) ValidationResponse {
	return ValidationResponse{
		BasicResponse: NewBasicResponse(false, details),
		Fields:        fields,
	}
}
