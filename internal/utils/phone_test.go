package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare national number", input: "9876543210", want: "+919876543210"},
		{name: "already canonical", input: "+919876543210", want: "+919876543210"},
		{name: "country code without plus and spaces", input: "91 98765 43210", want: "+919876543210"},
		{name: "dashes stripped", input: "98765-43210", want: "+919876543210"},
		{name: "surrounding whitespace", input: "  +91 98765 43210 ", want: "+919876543210"},
		{name: "too short passes through", input: "12345", want: "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "bare national number", input: "9876543210", valid: true},
		{name: "canonical form", input: "+919876543210", valid: true},
		{name: "spaced with country code", input: "91 98765 43210", valid: true},
		{name: "too short", input: "12345", valid: false},
		{name: "invalid leading digit", input: "+91123456789", valid: false},
		{name: "leading digit below range", input: "5876543210", valid: false},
		{name: "empty", input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePhone(NormalizePhone(tt.input)))
		})
	}
}

// Every accepted spelling of the same number must land on one
// canonical form.
func TestNormalizePhoneCanonical(t *testing.T) {
	inputs := []string{"9876543210", "+919876543210", "91 98765 43210"}
	for _, in := range inputs {
		assert.Equal(t, "+919876543210", NormalizePhone(in), "input %q", in)
	}
}
