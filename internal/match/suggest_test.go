package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := map[string]string{
		"e-mail":     "email",
		"E_Mail":     "email",
		"eMail":      "email",
		"dogs.Dog":   "dogsdog",
		"":           "",
		"with space": "withspace",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeIdent(in), in)
	}
}

func TestSuggest(t *testing.T) {
	directives := []string{"alias", "rename", "default"}

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"aliass", "alias", true},
		{"alais", "alias", true},
		{"renmae", "rename", true},
		{"Default", "default", true},
		{"defualt", "default", true},
		{"flatten", "", false},
		{"alias", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.name, directives)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggest_NoCandidates(t *testing.T) {
	_, ok := Suggest("dog", nil)
	assert.False(t, ok)
}
