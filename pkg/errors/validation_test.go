package errors

import (
	"strings"
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "label", false},
		{"valid with dash", "item-3", false},
		{"valid with dot", "row.title", false},
		{"valid unicode", "título", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", MaxElementIDLength+1), true},
		{"separator", "a:b", true},
		{"space", "a b", true},
		{"tab", "a\tb", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidIdentifier) {
				t.Errorf("ValidateElementID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidIdentifier)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"toml", "stack.toml", ""},
		{"yaml", "dir/stack.yaml", ""},
		{"yml upper", "STACK.YML", ""},
		{"json", "/tmp/stack.json", ""},
		{"empty", "", ErrCodeInvalidInput},
		{"null byte", "st\x00ack.toml", ErrCodeInvalidInput},
		{"no extension", "stack", ErrCodeInvalidFormat},
		{"unsupported", "stack.xml", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateDocumentPath(%q) code = %q, want %q (err=%v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}
