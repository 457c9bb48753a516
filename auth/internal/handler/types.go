package handler

import "time"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type resendVerificationRequest struct {
	Email string `json:"email"`
}

type banRequest struct {
	Reason *string    `json:"reason,omitempty"`
	Until  *time.Time `json:"until,omitempty"`
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type deleteAdminResponse struct {
	Deleted int64 `json:"deleted"`
}

type capabilityResponse struct {
	Capability string `json:"capability"`
	Allowed    bool   `json:"allowed"`
	Role       string `json:"role"`
}
