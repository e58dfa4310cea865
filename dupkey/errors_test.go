package dupkey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "zero value",
			err:  &ConfigError{},
			want: "dupkey: configuration: invalid record description",
		},
		{
			name: "full",
			err:  &ConfigError{Type: "dogs.Dog", Field: "Breed", Reason: ErrUnknownDirective, Detail: "flatten"},
			want: "dupkey: configuration of dogs.Dog field Breed: unsupported directive: flatten",
		},
		{
			name: "detail without reason",
			err:  &ConfigError{Field: "Breed", Detail: "flatten"},
			want: "dupkey: configuration field Breed: invalid record description: flatten",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	err := error(&ConfigError{Reason: ErrDuplicateKey})
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.NoError(t, (&ConfigError{}).Unwrap())
}
