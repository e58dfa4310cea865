package dupkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
	}{
		{"first", FirstWins},
		{"FirstWins", FirstWins},
		{" keep-first ", FirstWins},
		{"last", LastWins},
		{"last-wins", LastWins},
		{"LASTWINS", LastWins},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePolicy("middle")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "FirstWins", FirstWins.String())
	assert.Equal(t, "LastWins", LastWins.String())
	assert.Equal(t, "Policy(0)", Policy(0).String())
	assert.False(t, Policy(3).Valid())
}
