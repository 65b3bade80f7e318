package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, sep, want string
	}{
		{"Promoção de Verão!", "-", "promocao-de-verao"},
		{"  Summer   Sale  ", "-", "summer-sale"},
		{"Loja da Ana", "_", "loja_da_ana"},
		{"açaí & café 2024", "-", "acai-cafe-2024"},
		{"!!!", "-", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in, tt.sep))
		})
	}
}

func TestPasta(t *testing.T) {
	p, err := Pasta("Loja da Ana")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^loja_da_ana_[a-z0-9]{6}$`), p)

	other, err := Pasta("Loja da Ana")
	require.NoError(t, err)
	assert.NotEqual(t, p, other)

	fallback, err := Pasta("???")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^loja_[a-z0-9]{6}$`), fallback)
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(10)
	require.NoError(t, err)
	assert.Len(t, s, 10)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]+$`), s)
}
