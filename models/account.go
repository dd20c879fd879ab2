package models

import "time"

// SignInMethod names the way an account can authenticate.
type SignInMethod string

const (
	// SignInMethodPassword is the email + password grant.
	SignInMethodPassword SignInMethod = "password"
	// SignInMethodGoogle is the federated Google sign-in.
	SignInMethodGoogle SignInMethod = "google.com"
)

// Account is an entry of the identity directory.
// PasswordHash is empty for accounts that only ever signed in through a
// federated provider.
type Account struct {
	// UserID is the internal unique identifier of the account.
	UserID int64 `json:"-"`

	// Email is the unique login of the account.
	Email string `json:"email"`

	// DisplayName is the non-sensitive name shown in the UI.
	DisplayName string `json:"display_name"`

	// PhotoURL is the avatar reported by a federated provider, if any.
	PhotoURL string `json:"photo_url,omitempty"`

	// PasswordHash is the encoded argon2id hash. Never leaves the server.
	PasswordHash string `json:"-"`

	// Methods lists every sign-in method bound to the account.
	Methods []SignInMethod `json:"methods,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with Account.
func (a Account) TableName() string {
	return "accounts"
}

// HasMethod reports whether m is bound to the account.
func (a Account) HasMethod(m SignInMethod) bool {
	return ContainsMethod(a.Methods, m)
}

// ContainsMethod reports whether methods includes m.
func ContainsMethod(methods []SignInMethod, m SignInMethod) bool {
	for _, v := range methods {
		if v == m {
			return true
		}
	}
	return false
}

// IsFederatedOnly reports whether the methods contain a federated provider
// but no password.
func IsFederatedOnly(methods []SignInMethod) bool {
	return ContainsMethod(methods, SignInMethodGoogle) && !ContainsMethod(methods, SignInMethodPassword)
}

// Identity is the signed-in principal as seen by the client.
type Identity struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	PhotoURL    string       `json:"photoURL"`
	Provider    SignInMethod `json:"provider,omitempty"`
}

// PasswordReset is a one-shot token that lets the owner of an email set a
// new password.
type PasswordReset struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	Used      bool
}
