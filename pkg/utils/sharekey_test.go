package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShareKey(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		key := GenerateShareKey()
		assert.Len(t, key, ShareKeyLength)
		assert.True(t, ValidShareKeyStrict(key), "generated key %q must be uppercase alphanumeric", key)
		seen[key] = struct{}{}
	}
	// 100 draws from 36^8 keys colliding would point at a broken generator.
	assert.Greater(t, len(seen), 95)
}

func TestValidShareKey(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{"valid uppercase", "ABCD1234", true},
		{"valid lowercase passes length-only check", "abcd1234", true},
		{"too short", "ABC123", false},
		{"too long", "ABCD12345", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidShareKey(tt.key))
		})
	}
}

func TestValidShareKeyStrict(t *testing.T) {
	assert.True(t, ValidShareKeyStrict("ABCD1234"))
	assert.False(t, ValidShareKeyStrict("abcd1234"))
	assert.False(t, ValidShareKeyStrict("ABCD123!"))
	assert.False(t, ValidShareKeyStrict(strings.Repeat("A", 9)))
}
