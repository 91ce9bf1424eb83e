package dto

// ── auth ──

// LoginRequest root or admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=72"`
}

// PembinaLoginRequest supervisor login by external id.
type PembinaLoginRequest struct {
	IDPembina string `json:"id_pembina" binding:"required,max=50"`
}

// UserInfo the logged-in operator.
type UserInfo struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

// TokenResponse login result.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int      `json:"expires_in"`   // seconds
	IdleTimeout int      `json:"idle_timeout"` // seconds
	User        UserInfo `json:"user"`
}
