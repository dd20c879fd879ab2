package models

// SignUpRequest is the body of POST /api/auth/signup.
type SignUpRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// SignInRequest is the body of POST /api/auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FederatedSignInRequest is the body of POST /api/auth/federated.
// IDToken is the assertion issued by the federated provider.
type FederatedSignInRequest struct {
	Provider SignInMethod `json:"provider"`
	IDToken  string       `json:"id_token"`
}

// SignInMethodsResponse is returned by GET /api/auth/methods.
type SignInMethodsResponse struct {
	Methods []SignInMethod `json:"methods"`
}

// PasswordResetRequest is the body of POST /api/auth/password-reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest is the body of
// POST /api/auth/password-reset/confirm.
type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// CreatedResponse is returned when the store assigns an identifier.
type CreatedResponse struct {
	ID string `json:"id"`
}
