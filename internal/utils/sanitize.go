package utils

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxStringLength      = 500
	MaxDescriptionLength = 2000
	MaxKeyLength         = 100
)

var (
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	// Operator and script fragments that have no business in stored text.
	dangerousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$where`),
		regexp.MustCompile(`(?i)\$ne`),
		regexp.MustCompile(`(?i)\$gt`),
		regexp.MustCompile(`(?i)\$lt`),
		regexp.MustCompile(`(?i)\$regex`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)onerror=`),
		regexp.MustCompile(`(?i)onload=`),
		regexp.MustCompile(`(?i)<script`),
	}
)

func SanitizeString(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	text = htmlTagRegex.ReplaceAllString(text, "")
	for _, pattern := range dangerousPatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	if len(text) > maxLength {
		text = text[:maxLength]
	}
	return strings.TrimSpace(text)
}

// SanitizeMetadata narrows arbitrary JSON values to a canonical string form:
// scalars are stringified, anything else is serialized before sanitizing.
func SanitizeMetadata(metadata map[string]any) map[string]string {
	if len(metadata) == 0 {
		return map[string]string{}
	}

	sanitized := make(map[string]string, len(metadata))
	for key, value := range metadata {
		safeKey := SanitizeString(key, MaxKeyLength)
		if safeKey == "" {
			continue
		}

		var raw string
		switch v := value.(type) {
		case string:
			raw = v
		case float64:
			raw = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			raw = strconv.FormatBool(v)
		case nil:
			raw = ""
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				continue
			}
			raw = string(encoded)
		}

		sanitized[safeKey] = SanitizeString(raw, MaxDescriptionLength)
	}
	return sanitized
}

// ValidateFilePath accepts either an allowed external URL or a local path
// under one of the allowed prefixes, and rejects traversal characters.
func ValidateFilePath(filePath string, allowedHosts, allowedPrefixes []string) bool {
	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		return ValidateExternalURL(filePath, allowedHosts)
	}

	for _, pattern := range []string{"..", "~", "$", "|", "&", ";", "`"} {
		if strings.Contains(filePath, pattern) {
			return false
		}
	}

	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}
	return false
}

func ValidateExternalURL(rawURL string, allowedHosts []string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	for _, host := range allowedHosts {
		if parsed.Host == host {
			return true
		}
	}
	return false
}
