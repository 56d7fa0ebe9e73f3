package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := Hash("StrongPassword123!")
	require.NoError(t, err)

	assert.NotEqual(t, "StrongPassword123!", hash)
	assert.True(t, Check(hash, "StrongPassword123!"))
	assert.False(t, Check(hash, "strongpassword123!"))
	assert.False(t, Check("", "anything"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		attrs []string
		want  []error
	}{
		{name: "strong", raw: "StrongPassword123!", attrs: []string{"testuser", "Pavlo", "Semenikhin"}},
		{name: "short", raw: "Ab1!", want: []error{ErrTooShort}},
		{name: "numeric", raw: "93847561", want: []error{ErrEntirelyDigit}},
		{name: "common and numeric", raw: "12345678", want: []error{ErrTooCommon, ErrEntirelyDigit}},
		{name: "similar to username", raw: "choppa2024", attrs: []string{"choppa"}, want: []error{ErrTooSimilar}},
		{name: "short attributes ignored", raw: "Qw9!zzkP", attrs: []string{"Qw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.raw, tt.attrs...))
		})
	}
}
