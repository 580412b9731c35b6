package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"plain text passes", "quarterly report", 100, "quarterly report"},
		{"html tags stripped", "<b>bold</b> move", 100, "bold move"},
		{"script fragment removed", `<img src=x onerror=alert(1)>`, 100, ""},
		{"query operators removed", `{"$where": "1"}`, 100, `{"": "1"}`},
		{"javascript scheme removed", "javascript:alert(1)", 100, "alert(1)"},
		{"truncated to max", "abcdefghij", 4, "abcd"},
		{"whitespace trimmed", "  padded  ", 100, "padded"},
		{"empty stays empty", "", 100, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeString(tc.in, tc.max))
		})
	}
}

func TestSanitizeMetadata(t *testing.T) {
	got := SanitizeMetadata(map[string]any{
		"author":  "alice",
		"pages":   float64(42),
		"urgent":  true,
		"note":    nil,
		"tags":    []any{"a", "b"},
		"<b></b>": "dropped key",
	})

	assert.Equal(t, map[string]string{
		"author": "alice",
		"pages":  "42",
		"urgent": "true",
		"note":   "",
		"tags":   `["a","b"]`,
	}, got)

	assert.Equal(t, map[string]string{}, SanitizeMetadata(nil))
}

func TestValidateFilePath(t *testing.T) {
	hosts := []string{"files.example.com"}
	prefixes := []string{"/uploads"}

	assert.True(t, ValidateFilePath("/uploads/report.pdf", hosts, prefixes))
	assert.True(t, ValidateFilePath("https://files.example.com/report.pdf", hosts, prefixes))

	assert.False(t, ValidateFilePath("/uploads/../etc/passwd", hosts, prefixes))
	assert.False(t, ValidateFilePath("/uploads/a;rm -rf /", hosts, prefixes))
	assert.False(t, ValidateFilePath("/etc/passwd", hosts, prefixes))
	assert.False(t, ValidateFilePath("https://evil.example.com/report.pdf", hosts, prefixes))
	assert.False(t, ValidateFilePath("ftp://files.example.com/report.pdf", hosts, prefixes))
}

func TestValidateExternalURL(t *testing.T) {
	hosts := []string{"files.example.com"}

	assert.True(t, ValidateExternalURL("https://files.example.com/a.pdf", hosts))
	assert.True(t, ValidateExternalURL("http://files.example.com/a.pdf", hosts))
	assert.False(t, ValidateExternalURL("https://files.example.com.evil.com/a.pdf", hosts))
	assert.False(t, ValidateExternalURL("https://other.example.com/a.pdf", nil))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("admin"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("a b@example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword("short"))
}
