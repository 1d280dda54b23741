package validator

import (
	"regexp"
	"strings"

	"terminfinder-api/core/constants"
	"terminfinder-api/core/validation"
	"terminfinder-api/modules/group/dto"
)

// bcrypt ignores input past 72 bytes, so longer passwords are refused.
const maxPasswordBytes = 72

var groupCodePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func ValidateGroupCode(result *validation.Result, code string) {
	switch {
	case code == "":
		result.Add("code", "code is required")
	case len(code) > constants.MaxGroupCodeLength:
		result.Addf("code", "code must be at most %d characters", constants.MaxGroupCodeLength)
	case !groupCodePattern.MatchString(code):
		result.Add("code", "code may only contain letters, digits, '.', '_' and '-'")
	}
}

func validatePassword(result *validation.Result, password string) {
	switch {
	case password == "":
		result.Add("password", "password is required")
	case len(password) > maxPasswordBytes:
		result.Addf("password", "password must be at most %d bytes", maxPasswordBytes)
	}
}

// ValidateAuthenticateGroupRequest trims the code in place.
func ValidateAuthenticateGroupRequest(req *dto.AuthenticateGroupRequest) *validation.Result {
	result := validation.NewResult()
	req.Code = strings.TrimSpace(req.Code)
	ValidateGroupCode(result, req.Code)
	validatePassword(result, req.Password)
	return result
}

func ValidateCreateShareLinkRequest(req *dto.CreateShareLinkRequest, maxTTLDays int) *validation.Result {
	result := validation.NewResult()
	req.Code = strings.TrimSpace(req.Code)
	ValidateGroupCode(result, req.Code)
	validatePassword(result, req.Password)
	if req.TTLDays != nil {
		if *req.TTLDays < 0 {
			result.Add("ttl_days", "ttl_days must not be negative")
		} else if *req.TTLDays > maxTTLDays {
			result.Addf("ttl_days", "ttl_days must be at most %d", maxTTLDays)
		}
	}
	return result
}

func ValidateTokenAuthRequest(req *dto.TokenAuthRequest) *validation.Result {
	result := validation.NewResult()
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		result.Add("token", "token is required")
	}
	return result
}
