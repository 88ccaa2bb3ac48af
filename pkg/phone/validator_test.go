package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		number string
		region string
		want   bool
	}{
		{"us number with country code", "+16502530000", "", true},
		{"us number default region", "(650) 253-0000", "", true},
		{"uk number with region hint", "020 7946 0958", "GB", true},
		{"garbage", "not-a-number", "", false},
		{"too short", "12345", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsValid(tt.number, tt.region))
		})
	}
}

func TestNormalize(t *testing.T) {
	v := NewValidator()

	got, err := v.Normalize("(650) 253-0000", "")
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", got)

	_, err = v.Normalize("not-a-number", "")
	assert.Error(t, err)

	_, err = v.Normalize("", "")
	assert.Error(t, err)
}
