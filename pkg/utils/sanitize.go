package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// Fragments stripped outright before tag removal.
var dangerousFragments = []string{
	"<script>",
	"</script>",
	"javascript:",
	"onload=",
	"onerror=",
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// maxInputLength caps sanitized input to keep downstream keyword scans
// bounded.
const maxInputLength = 10000

// SanitizeInput strips script fragments and HTML tags from
// user-supplied text and truncates it to a safe length.
func SanitizeInput(s string) string {
	for _, frag := range dangerousFragments {
		s = strings.ReplaceAll(s, frag, "")
	}

	s = htmlTagPattern.ReplaceAllString(s, "")

	if len(s) > maxInputLength {
		s = s[:maxInputLength]
	}

	return s
}

// HashSensitive returns a short stable digest of sensitive data so it
// can appear in logs without exposing the value.
func HashSensitive(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])[:16]
}
