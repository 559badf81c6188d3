package authenticator

import "github.com/coursecatalog/catalog/models"

// Claim names used by the federation's userinfo response
const (
	ClaimNickname   = "nickname"
	ClaimGivenName  = "given_name"
	ClaimFamilyName = "family_name"
	ClaimEmail      = "email"
)

// MapClaims normalizes provider claims into the canonical profile.
// It never fails: absent or non-string claims become empty strings.
func MapClaims(raw RawClaims) models.Profile {
	return models.Profile{
		Nickname:  stringClaim(raw, ClaimNickname),
		FirstName: stringClaim(raw, ClaimGivenName),
		LastName:  stringClaim(raw, ClaimFamilyName),
		Email:     stringClaim(raw, ClaimEmail),
	}
}

func stringClaim(raw RawClaims, name string) string {
	if s, ok := raw[name].(string); ok {
		return s
	}
	return ""
}
