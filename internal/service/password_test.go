package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"ascii", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, HashPassword(test.password))
		})
	}

	t.Run("deterministic and never plaintext", func(t *testing.T) {
		t.Parallel()
		for _, pw := range []string{"pw1", "correct horse battery staple", "пароль"} {
			digest := HashPassword(pw)
			assert.Len(t, digest, 64)
			assert.Equal(t, digest, HashPassword(pw))
			assert.NotEqual(t, pw, digest)
		}
	})
}
