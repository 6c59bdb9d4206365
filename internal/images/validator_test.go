package images

import "testing"

func TestIsValidImageURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"trusted domain without extension", "https://cdn.liketu.com/v2/posts/abc", true},
		{"trusted domain with path", "https://files.peakd.com/file/peakd-hive/someone/photo", true},
		{"trusted domain case insensitive host", "https://IMAGES.HIVE.BLOG/whatever", true},
		{"recognized extension", "https://example.com/photo.png", true},
		{"uppercase extension", "https://images.hive.blog/x.JPG", true},
		{"uppercase extension untrusted host", "https://example.com/x.JPG", true},
		{"webp extension", "https://example.com/a/b/c.webp", true},
		{"unrecognized extension", "https://example.com/file.txt", false},
		{"no extension untrusted host", "https://example.com/photo", false},
		{"not a url", "not-a-url", false},
		{"empty string", "", false},
		{"missing scheme", "example.com/photo.png", false},
		{"query string after extension", "https://example.com/photo.png?w=100", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidImageURL(tt.url); got != tt.valid {
				t.Errorf("IsValidImageURL(%q) = %v, want %v", tt.url, got, tt.valid)
			}
		})
	}
}

func TestValidImages(t *testing.T) {
	raw := []string{
		"https://example.com/a.png",
		"",
		"   ",
		"https://example.com/notes.txt",
		"https://cdn.liketu.com/v2/posts/abc",
		"  https://example.com/b.jpg  ",
		"https://example.com/a.png", // duplicate kept, dedup happens at merge
	}

	got := ValidImages(raw)
	want := []string{
		"https://example.com/a.png",
		"https://cdn.liketu.com/v2/posts/abc",
		"https://example.com/b.jpg",
		"https://example.com/a.png",
	}

	if len(got) != len(want) {
		t.Fatalf("ValidImages returned %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("at index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidImagesEmptyInput(t *testing.T) {
	if got := ValidImages(nil); len(got) != 0 {
		t.Errorf("ValidImages(nil) = %v, want empty", got)
	}
}
