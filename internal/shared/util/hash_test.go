package util

import "testing"

func TestUserDirKey(t *testing.T) {
	id := "google:12345"
	got := UserDirKey(id)
	if got != UserDirKey(id) {
		t.Fatalf("expected stable key, got %s", got)
	}
	if len(got) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(got))
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("key contains non-hex character: %c", ch)
		}
	}
	if UserDirKey("google:12345") == UserDirKey("google:12346") {
		t.Fatalf("distinct ids should not collide")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  My Resume (final).docx ", want: "My Resume _final_.docx"},
		{in: "../../etc/passwd", want: "passwd"},
		{in: "dir/sub/cv.pdf", want: "cv.pdf"},
		{in: "", wantErr: true},
		{in: "...", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
