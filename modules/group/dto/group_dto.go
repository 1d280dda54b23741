package dto

import "time"

// AuthOutcome tags the result of a password authentication.
type AuthOutcome string

const (
	AuthOutcomeCreated       AuthOutcome = "created"
	AuthOutcomeAuthenticated AuthOutcome = "authenticated"
	AuthOutcomeRejected      AuthOutcome = "rejected"
)

type AuthenticateGroupRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

type AuthenticateGroupResponse struct {
	Outcome   AuthOutcome `json:"outcome"`
	GroupCode string      `json:"group_code"`
	Session   *Session    `json:"session,omitempty"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateShareLinkRequest struct {
	Code      string `json:"code"`
	Password  string `json:"password"`
	TTLDays   *int   `json:"ttl_days"`
	SingleUse bool   `json:"single_use"`
}

// ShareLinkResponse carries the plaintext token. It is only ever returned
// from the create call.
type ShareLinkResponse struct {
	ID        string     `json:"id"`
	GroupCode string     `json:"group_code"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
	SingleUse bool       `json:"single_use"`
}

type TokenAuthRequest struct {
	Token string `json:"token"`
}

type TokenAuthResponse struct {
	GroupCode string   `json:"group_code"`
	Session   *Session `json:"session"`
}

type SuggestCodeRequest struct {
	Name string `json:"name"`
}

type SuggestCodeResponse struct {
	Code string `json:"code"`
}
