package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// videoIDPattern is the shape of a canonical YouTube video ID
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsVideoID reports whether s has the canonical video ID shape
func IsVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}

// ExtractVideoID locates a video ID in a bare ID or a YouTube URL.
// Accepted forms: bare 11-char ID, youtu.be/ID, /shorts/ID, /embed/ID, ?v=ID.
// The host is not checked and the extracted token is returned as found.
func ExtractVideoID(input string) (string, error) {
	if IsVideoID(input) {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, input)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "youtu.be" {
		if id := strings.TrimPrefix(u.Path, "/"); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, input)
	}

	for _, prefix := range []string{"/shorts/", "/embed/"} {
		if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
			segment, _, _ := strings.Cut(rest, "/")
			if segment != "" {
				return segment, nil
			}
			return "", fmt.Errorf("%w: %q", ErrInvalidReference, input)
		}
	}

	if v := u.Query().Get("v"); v != "" {
		return v, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidReference, input)
}

// ResolveVideoID extracts a video ID and rejects anything that is not
// canonically shaped, so callers never forward a malformed ID.
func ResolveVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	id, err := ExtractVideoID(input)
	if err != nil {
		return "", err
	}
	if !IsVideoID(id) {
		return "", fmt.Errorf("%w: %q is not a valid video ID", ErrInvalidReference, id)
	}
	return id, nil
}

// WatchURL builds the canonical watch page URL for a video ID
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}
