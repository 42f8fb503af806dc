package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		input   string
		want    Profile
		wantErr bool
	}{
		{"translation", ProfileTranslation, false},
		{"completion", ProfileCompletion, false},
		{"chatbot", ProfileChatbot, false},
		{"summarization", "", true},
		{"Translation", "", true}, // identifiers are lowercase
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProfile(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidProfile)
				assert.Contains(t, err.Error(), tt.input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCharsToTokens_Linear(t *testing.T) {
	// chars_to_tokens(4c) == c for integer c >= 0.
	for _, c := range []int{0, 1, 3, 100, 2000, 123456} {
		assert.Equal(t, float64(c), CharsToTokens(4*c), "chars=%d", 4*c)
	}
}

func TestProfileTokens(t *testing.T) {
	sim := DefaultParams().Simulation

	tests := []struct {
		profile   Profile
		tokensIn  float64
		tokensOut float64
	}{
		// 2000 chars / 4, both directions
		{ProfileTranslation, 500, 500},
		// (2000 + 400) / 4 in, average output out
		{ProfileCompletion, 600, 300},
		// (10×2000 + 2×400) / 4 in, average output out
		{ProfileChatbot, 5200, 300},
	}

	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			in, out, err := tt.profile.Tokens(sim)
			require.NoError(t, err)
			assert.Equal(t, tt.tokensIn, in)
			assert.Equal(t, tt.tokensOut, out)
		})
	}
}

func TestProfileTokens_UnknownProfile(t *testing.T) {
	_, _, err := Profile("oracle").Tokens(DefaultParams().Simulation)
	require.ErrorIs(t, err, ErrInvalidProfile)
}
