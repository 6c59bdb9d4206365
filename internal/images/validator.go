// Package images classifies URLs as legitimate image references using an
// extension allow-list or a trusted-domain allow-list.
package images

import (
	"net/url"
	"strings"
)

// validExtensions is the set of recognized image file extensions.
// Process-wide read-only.
var validExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".bmp":  {},
	".svg":  {},
	".avif": {},
	".tiff": {},
	".tif":  {},
	".ico":  {},
}

// trustedDomains hosts media CDNs whose URLs carry no file extension.
// Process-wide read-only.
var trustedDomains = map[string]struct{}{
	"cdn.liketu.com":        {},
	"images.ecency.com":     {},
	"images.hive.blog":      {},
	"cdn.steemitimages.com": {},
	"files.peakd.com":       {},
	"static.peakd.com":      {},
}

// IsValidImageURL reports whether rawURL is a legitimate image reference.
// Fails closed: any malformed URL is reported as invalid, never an error.
func IsValidImageURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	if _, ok := trustedDomains[strings.ToLower(u.Hostname())]; ok {
		return true
	}

	pathname := strings.ToLower(u.Path)
	lastDot := strings.LastIndex(pathname, ".")
	if lastDot == -1 {
		return false
	}

	_, ok := validExtensions[pathname[lastDot:]]
	return ok
}

// ValidImages filters a raw image list down to valid image URLs. Blank and
// invalid entries are dropped; order is preserved and duplicates are kept
// (deduplication happens later at the participant merge stage).
func ValidImages(raw []string) []string {
	valid := make([]string, 0, len(raw))
	for _, img := range raw {
		trimmed := strings.TrimSpace(img)
		if trimmed == "" {
			continue
		}
		if IsValidImageURL(trimmed) {
			valid = append(valid, trimmed)
		}
	}
	return valid
}
