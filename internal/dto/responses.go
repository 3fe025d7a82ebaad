package dto

import "time"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse represents a bare acknowledgement
type OKResponse struct {
	OK bool `json:"ok"`
}

// VerifyResponse represents a successful admin login
type VerifyResponse struct {
	OK        bool      `json:"ok"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadURLResponse represents a presigned direct-upload grant
type UploadURLResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	PublicURL   string `json:"publicUrl"`
	ContentType string `json:"contentType"`
}

// SummarizeResponse represents a condensed review text
type SummarizeResponse struct {
	Text string `json:"text"`
}
