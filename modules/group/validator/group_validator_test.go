package validator

import (
	"strings"
	"testing"

	"terminfinder-api/modules/group/dto"
)

func intPtr(v int) *int { return &v }

func TestValidateAuthenticateGroupRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.AuthenticateGroupRequest
		wantErr bool
	}{
		{"valid", dto.AuthenticateGroupRequest{Code: "team-42", Password: "pw"}, false},
		{"trimmed", dto.AuthenticateGroupRequest{Code: "  team  ", Password: "pw"}, false},
		{"missing code", dto.AuthenticateGroupRequest{Password: "pw"}, true},
		{"missing password", dto.AuthenticateGroupRequest{Code: "team"}, true},
		{"slash in code", dto.AuthenticateGroupRequest{Code: "a/b", Password: "pw"}, true},
		{"code too long", dto.AuthenticateGroupRequest{Code: strings.Repeat("a", 65), Password: "pw"}, true},
		{"password too long", dto.AuthenticateGroupRequest{Code: "team", Password: strings.Repeat("p", 73)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			result := ValidateAuthenticateGroupRequest(&req)
			if result.HasError() != tt.wantErr {
				t.Fatalf("HasError() = %v, want %v (%+v)", result.HasError(), tt.wantErr, result.Errors)
			}
			if req.Code != strings.TrimSpace(tt.req.Code) {
				t.Fatalf("code not trimmed: %q", req.Code)
			}
		})
	}
}

func TestValidateCreateShareLinkRequest(t *testing.T) {
	tests := []struct {
		name    string
		ttl     *int
		wantErr bool
	}{
		{"default ttl", nil, false},
		{"no expiry", intPtr(0), false},
		{"max", intPtr(365), false},
		{"negative", intPtr(-1), true},
		{"too long", intPtr(366), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateShareLinkRequest{Code: "team", Password: "pw", TTLDays: tt.ttl}
			if got := ValidateCreateShareLinkRequest(&req, 365).HasError(); got != tt.wantErr {
				t.Fatalf("HasError() = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateTokenAuthRequest(t *testing.T) {
	if !ValidateTokenAuthRequest(&dto.TokenAuthRequest{Token: "   "}).HasError() {
		t.Fatal("blank token accepted")
	}
	if ValidateTokenAuthRequest(&dto.TokenAuthRequest{Token: "abc"}).HasError() {
		t.Fatal("token rejected")
	}
}
