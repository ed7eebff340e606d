package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeIdShort(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "AlreadyValid", input: "Nameplate", expected: "Nameplate"},
		{name: "SingleLetter", input: "a", expected: "a"},
		{name: "SpacesAndPunctuation", input: "My Sensor!!", expected: "MySensor"},
		{name: "LeadingDigit", input: "1stValue", expected: "id1stValue"},
		{name: "LeadingUnderscore", input: "_hidden", expected: "id_hidden"},
		{name: "TrailingSeparators", input: "Value_-_", expected: "Value"},
		{name: "OnlySeparators", input: "-_-", expected: FallbackIdShort},
		{name: "Empty", input: "", expected: FallbackIdShort},
		{name: "NonASCII", input: "Größe", expected: "Gre"},
		{name: "OnlyDigits", input: "42", expected: "id42"},
		{name: "InnerSeparatorsKept", input: "max-Temp_1", expected: "max-Temp_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeIdShort(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.True(t, IsValidIdShort(got), "%q must match the idShort pattern", got)
			assert.Equal(t, got, SanitizeIdShort(got), "sanitizing twice must be stable")
		})
	}
}

func TestSanitizeIdShortIsIdempotentForArbitraryInput(t *testing.T) {
	inputs := []string{
		"", " ", "!!", "9", "9_", "_9", "a_", "-a-", "ä", "x y z", "__init__",
		"Temp (°C)", "http://example.com/x", "a--b", "A1-", "0x10",
	}
	for _, in := range inputs {
		once := SanitizeIdShort(in)
		require.True(t, IsValidIdShort(once), "input %q produced %q", in, once)
		require.Equal(t, once, SanitizeIdShort(once), "input %q", in)
	}
}

func TestIsValidIdShort(t *testing.T) {
	assert.True(t, IsValidIdShort("a"))
	assert.True(t, IsValidIdShort("a-b_c9"))
	assert.False(t, IsValidIdShort(""))
	assert.False(t, IsValidIdShort("9a"))
	assert.False(t, IsValidIdShort("a_"))
	assert.False(t, IsValidIdShort("a b"))
}
