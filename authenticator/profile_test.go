package authenticator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursecatalog/catalog/models"
)

func TestMapClaims(t *testing.T) {
	tests := []struct {
		name string
		raw  RawClaims
		want models.Profile
	}{
		{
			name: "all claims",
			raw: RawClaims{
				"nickname":    "jd",
				"given_name":  "Jane",
				"family_name": "Doe",
				"email":       "jane@example.edu",
				"sub":         "ignored",
			},
			want: models.Profile{Nickname: "jd", FirstName: "Jane", LastName: "Doe", Email: "jane@example.edu"},
		},
		{
			name: "missing email",
			raw:  RawClaims{"nickname": "jd", "given_name": "Jane", "family_name": "Doe"},
			want: models.Profile{Nickname: "jd", FirstName: "Jane", LastName: "Doe"},
		},
		{
			name: "non string values",
			raw:  RawClaims{"nickname": 42.0, "given_name": nil, "family_name": []interface{}{"Doe"}, "email": true},
			want: models.Profile{},
		},
		{
			name: "empty",
			raw:  RawClaims{},
			want: models.Profile{},
		},
		{
			name: "nil",
			raw:  nil,
			want: models.Profile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapClaims(tt.raw))
		})
	}
}

func TestMapClaimsDoesNotModifyInput(t *testing.T) {
	raw := RawClaims{"nickname": "jd", "email": "jane@example.edu"}

	MapClaims(raw)

	assert.Equal(t, RawClaims{"nickname": "jd", "email": "jane@example.edu"}, raw)
}
