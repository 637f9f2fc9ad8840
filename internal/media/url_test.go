package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain url untouched", "https://example.com/foto.jpg", "https://example.com/foto.jpg"},
		{"file share link", "https://drive.google.com/file/d/1AbC_xyz/view?usp=sharing", "https://drive.google.com/thumbnail?id=1AbC_xyz&sz=w1200"},
		{"open link with trailing params", "https://drive.google.com/open?id=1AbC&authuser=0", "https://drive.google.com/thumbnail?id=1AbC&sz=w1200"},
		{"uc link id at end", "https://drive.google.com/uc?export=view&id=1AbC", "https://drive.google.com/thumbnail?id=1AbC&sz=w1200"},
		{"marker without id", "https://drive.google.com/drive/folders", "https://drive.google.com/drive/folders"},
		{"path marker on another host", "https://cdn.example.com/d/abc/pic.png", "https://drive.google.com/thumbnail?id=abc&sz=w1200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeImageURL(tt.in))
		})
	}
}

func TestNormalizeImageURLIsIdempotent(t *testing.T) {
	canonical := "https://drive.google.com/thumbnail?id=1AbC&sz=w1200"
	assert.Equal(t, canonical, NormalizeImageURL(canonical))

	share := "https://drive.google.com/file/d/1AbC/view"
	once := NormalizeImageURL(share)
	assert.Equal(t, once, NormalizeImageURL(share))
	assert.Equal(t, once, NormalizeImageURL(once))
}
