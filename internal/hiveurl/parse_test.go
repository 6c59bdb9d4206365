package hiveurl

import "testing"

func TestParsePostURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		author   string
		permlink string
		wantErr  bool
	}{
		{
			name:     "peakd with category",
			url:      "https://peakd.com/spanish/@hiveblocks-es/weekly-powerup",
			author:   "hiveblocks-es",
			permlink: "weekly-powerup",
		},
		{
			name:     "peakd without category",
			url:      "https://peakd.com/@someone/my-post",
			author:   "someone",
			permlink: "my-post",
		},
		{
			name:     "peakd community prefix",
			url:      "https://peakd.com/hive-123456/@someone/my-post",
			author:   "someone",
			permlink: "my-post",
		},
		{
			name:     "hive.blog",
			url:      "https://hive.blog/@author.name/some-permlink",
			author:   "author.name",
			permlink: "some-permlink",
		},
		{
			name:     "ecency",
			url:      "https://ecency.com/@someone/my-post",
			author:   "someone",
			permlink: "my-post",
		},
		{
			name:     "mixed case normalized",
			url:      "https://peakd.com/@SomeOne/My-Post",
			author:   "someone",
			permlink: "my-post",
		},
		{name: "empty", url: "", wantErr: true},
		{name: "whitespace only", url: "   ", wantErr: true},
		{name: "unknown frontend", url: "https://example.com/@someone/my-post", wantErr: true},
		{name: "missing permlink", url: "https://peakd.com/@someone", wantErr: true},
		{name: "author too short", url: "https://peakd.com/@ab/my-post", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParsePostURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ref.Author != tt.author || ref.Permlink != tt.permlink {
				t.Errorf("got %s/%s, want %s/%s", ref.Author, ref.Permlink, tt.author, tt.permlink)
			}
		})
	}
}

func TestBuildPeakdURL(t *testing.T) {
	got := BuildPeakdURL("@someone", "my-post")
	want := "https://peakd.com/@someone/my-post"
	if got != want {
		t.Errorf("BuildPeakdURL = %q, want %q", got, want)
	}
}
