package handlers

import "testing"

func TestImageContentType_Accepted(t *testing.T) {
	tests := []struct {
		filename, ext, contentType string
	}{
		{"pancakes.jpg", ".jpg", "image/jpeg"},
		{"PANCAKES.JPEG", ".jpeg", "image/jpeg"},
		{"dish.png", ".png", "image/png"},
		{"dish.final.webp", ".webp", "image/webp"},
	}
	for _, tt := range tests {
		ext, contentType, ok := imageContentType(tt.filename)
		if !ok {
			t.Errorf("imageContentType(%q) rejected", tt.filename)
			continue
		}
		if ext != tt.ext || contentType != tt.contentType {
			t.Errorf("imageContentType(%q) = %q, %q, want %q, %q", tt.filename, ext, contentType, tt.ext, tt.contentType)
		}
	}
}

func TestImageContentType_Rejected(t *testing.T) {
	for _, name := range []string{"recipe.gif", "notes.txt", "noextension", ""} {
		if _, _, ok := imageContentType(name); ok {
			t.Errorf("imageContentType(%q) should be rejected", name)
		}
	}
}
