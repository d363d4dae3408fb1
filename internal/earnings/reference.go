package earnings

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/yt-earnings/internal/models"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ClassifyReference detects which address scheme a channel reference uses.
// Supported formats:
//   - youtube.com/channel/UC...
//   - youtube.com/c/Name and youtube.com/user/Name
//   - youtube.com/@Handle or a bare @Handle
func ClassifyReference(raw string) models.ChannelReference {
	ref := models.ChannelReference{Raw: raw, Kind: models.ReferenceInvalid}
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "@") {
		handle := strings.TrimPrefix(trimmed, "@")
		if handle != "" && !strings.ContainsAny(handle, "/?# ") {
			ref.Kind, ref.Value = models.ReferenceHandle, handle
		}
		return ref
	}

	parsed, err := parseLooseURL(trimmed)
	if err != nil || !isYouTubeHost(parsed.Hostname()) {
		return ref
	}
	segments := pathSegments(parsed.Path)

	if id := segmentAfter(segments, "channel"); id != "" {
		ref.Kind, ref.Value = models.ReferenceCanonicalID, id
		return ref
	}
	if name := segmentAfter(segments, "c"); name != "" {
		ref.Kind, ref.Value = models.ReferenceCustomName, name
		return ref
	}
	if name := segmentAfter(segments, "user"); name != "" {
		ref.Kind, ref.Value = models.ReferenceCustomName, name
		return ref
	}
	for _, segment := range segments {
		if len(segment) > 1 && strings.HasPrefix(segment, "@") {
			ref.Kind, ref.Value = models.ReferenceHandle, segment[1:]
			return ref
		}
	}
	return ref
}

// ParseVideoReference extracts the video ID from a watch, short link, shorts,
// embed or live URL. A bare 11 character ID is accepted as is.
func ParseVideoReference(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if videoIDPattern.MatchString(trimmed) {
		return trimmed, nil
	}

	parsed, err := parseLooseURL(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrInvalidReference, err)
	}

	host := strings.ToLower(parsed.Hostname())
	segments := pathSegments(parsed.Path)
	var videoID string
	switch {
	case host == "youtu.be" || host == "www.youtu.be":
		if len(segments) > 0 {
			videoID = segments[0]
		}
	case isYouTubeHost(host):
		if len(segments) > 0 && segments[0] == "watch" {
			videoID = parsed.Query().Get("v")
			break
		}
		for _, marker := range []string{"shorts", "embed", "live", "v"} {
			if id := segmentAfter(segments, marker); id != "" {
				videoID = id
				break
			}
		}
	}

	if !videoIDPattern.MatchString(videoID) {
		return "", fmt.Errorf("%w: no video ID in %q", models.ErrInvalidReference, raw)
	}
	return videoID, nil
}

// parseLooseURL parses raw and assumes https when no scheme is given
func parseLooseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty URL")
	}
	// a "://" after the first path or query character belongs to the query, not the scheme
	if i := strings.Index(raw, "://"); i < 0 || strings.ContainsAny(raw[:i], "/?#") {
		raw = "https://" + raw
	}
	return url.Parse(raw)
}

func isYouTubeHost(host string) bool {
	host = strings.ToLower(host)
	return host == "youtube.com" || strings.HasSuffix(host, ".youtube.com")
}

func pathSegments(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// segmentAfter returns the path segment that follows marker, or ""
func segmentAfter(segments []string, marker string) string {
	for i, segment := range segments {
		if segment == marker && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}
