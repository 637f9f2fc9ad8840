package media

import (
	"regexp"
	"strings"
)

const driveThumbnailURL = "https://drive.google.com/thumbnail?id=%s&sz=w1200"

// driveIDPattern matches the three share-link shapes, in order of
// preference: /d/<id>/, id=<id>& and a trailing id=<id>.
var driveIDPattern = regexp.MustCompile(`/d/(.+?)/|id=(.+?)&|id=(.+?)$`)

// NormalizeImageURL rewrites Google Drive share links into a direct
// thumbnail URL. Anything else, including links whose file ID cannot be
// found, is returned unchanged.
func NormalizeImageURL(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "drive.google.com") && !strings.Contains(raw, "/d/") {
		return raw
	}

	m := driveIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	for _, id := range m[1:] {
		if id != "" {
			return strings.Replace(driveThumbnailURL, "%s", id, 1)
		}
	}
	return raw
}
