// Package hiveurl parses post URLs from the common Hive frontends
// (Peakd, Hive.blog, Ecency) into an author/permlink pair.
package hiveurl

import (
	"fmt"
	"regexp"
	"strings"
)

// PostRef identifies a post under an author.
type PostRef struct {
	Author   string
	Permlink string
}

// urlPatterns covers the accepted post URL shapes. Community-prefixed
// Peakd URLs ("/hive-123456/@author/permlink") match the first pattern.
var urlPatterns = []*regexp.Regexp{
	// Peakd with category or community: https://peakd.com/<segment>/@author/permlink
	regexp.MustCompile(`(?i)^https?://peakd\.com/[^/]+/@([a-z0-9\-.]+)/([a-z0-9\-]+)$`),
	// Peakd without category: https://peakd.com/@author/permlink
	regexp.MustCompile(`(?i)^https?://peakd\.com/@([a-z0-9\-.]+)/([a-z0-9\-]+)$`),
	// Hive.blog: https://hive.blog/@author/permlink
	regexp.MustCompile(`(?i)^https?://hive\.blog/@([a-z0-9\-.]+)/([a-z0-9\-]+)$`),
	// Ecency: https://ecency.com/@author/permlink
	regexp.MustCompile(`(?i)^https?://ecency\.com/@([a-z0-9\-.]+)/([a-z0-9\-]+)$`),
}

// ParsePostURL extracts the author and permlink from a Hive post URL.
func ParsePostURL(rawURL string) (*PostRef, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("empty post URL")
	}

	for _, pattern := range urlPatterns {
		match := pattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}

		author := strings.ToLower(match[1])
		permlink := strings.ToLower(match[2])

		if len(author) < 3 {
			return nil, fmt.Errorf("author %q is too short", author)
		}
		if len(permlink) < 3 {
			return nil, fmt.Errorf("permlink %q is too short", permlink)
		}

		return &PostRef{Author: author, Permlink: permlink}, nil
	}

	return nil, fmt.Errorf("unrecognized post URL format: %s", trimmed)
}

// IsValidPostURL reports whether rawURL is a recognized Hive post URL.
func IsValidPostURL(rawURL string) bool {
	_, err := ParsePostURL(rawURL)
	return err == nil
}

// BuildPeakdURL builds the canonical Peakd URL for a post.
func BuildPeakdURL(author, permlink string) string {
	return fmt.Sprintf("https://peakd.com/@%s/%s", strings.TrimPrefix(author, "@"), permlink)
}
