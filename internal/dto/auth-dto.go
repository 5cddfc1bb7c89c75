package dto

type RegisterRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Mobile   string  `json:"mobile" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Type     string  `json:"type" validate:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Mobile  string `json:"mobile"`
}

type ResendOtpRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type VerifyOtpRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	Code   string `json:"code" validate:"required,len=6"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type ResetPasswordRequest struct {
	Mobile             string `json:"mobile" validate:"required"`
	Otp                string `json:"otp" validate:"required,len=6"`
	NewPassword        string `json:"new_password" validate:"required,min=6"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
