package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTheme(t *testing.T) {
	testCases := []struct {
		input    string
		expected Theme
		ok       bool
	}{
		{input: "light", expected: ThemeLight, ok: true},
		{input: "dark", expected: ThemeDark, ok: true},
		{input: "Dark"},
		{input: ""},
		{input: "auto"},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseTheme(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTheme_Toggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Octo Cat", Profile{Login: "octo", Name: "Octo Cat"}.DisplayName())
	assert.Equal(t, "octo", Profile{Login: "octo"}.DisplayName())
}
