package earnings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yt-earnings/internal/earnings"
	"github.com/yt-earnings/internal/models"
)

func TestClassifyReference(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		kind  models.ReferenceKind
		value string
	}{
		{"channel id", "https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw", models.ReferenceCanonicalID, "UC_x5XG1OV2P6uZZ5FSM9Ttw"},
		{"channel id with tab", "https://www.youtube.com/channel/abc123/videos", models.ReferenceCanonicalID, "abc123"},
		{"channel id trailing slash", "youtube.com/channel/abc123/", models.ReferenceCanonicalID, "abc123"},
		{"mobile host", "https://m.youtube.com/channel/abc123", models.ReferenceCanonicalID, "abc123"},
		{"custom name", "https://www.youtube.com/c/GoogleDevelopers", models.ReferenceCustomName, "GoogleDevelopers"},
		{"legacy user", "https://www.youtube.com/user/pewdiepie", models.ReferenceCustomName, "pewdiepie"},
		{"handle url", "https://www.youtube.com/@mkbhd", models.ReferenceHandle, "mkbhd"},
		{"handle with tab", "https://youtube.com/@mkbhd/videos", models.ReferenceHandle, "mkbhd"},
		{"bare handle", "@mkbhd", models.ReferenceHandle, "mkbhd"},
		{"padded handle", "  @mkbhd \n", models.ReferenceHandle, "mkbhd"},
		{"schemeless handle with url in query", "youtube.com/@abc?si=https://x", models.ReferenceHandle, "abc"},
		{"schemeless channel with url in query", "www.youtube.com/channel/abc123?ref=https://x.com/y", models.ReferenceCanonicalID, "abc123"},
		{"search engine", "https://www.google.com/search?q=youtube", models.ReferenceInvalid, ""},
		{"foreign host with channel path", "https://example.com/channel/abc123", models.ReferenceInvalid, ""},
		{"video short link", "https://youtu.be/dQw4w9WgXcQ", models.ReferenceInvalid, ""},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", models.ReferenceInvalid, ""},
		{"empty channel segment", "https://www.youtube.com/channel/", models.ReferenceInvalid, ""},
		{"lone at sign", "@", models.ReferenceInvalid, ""},
		{"empty", "", models.ReferenceInvalid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := earnings.ClassifyReference(tt.raw)

			assert.Equal(t, tt.raw, ref.Raw)
			assert.Equal(t, tt.kind, ref.Kind, "kind %s", ref.Kind)
			assert.Equal(t, tt.value, ref.Value)
		})
	}
}

func TestParseVideoReference(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL123", "dQw4w9WgXcQ"},
		{"youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"youtube.com/watch?v=dQw4w9WgXcQ&next=https://x.com", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/aqz-KE-bpKQ", "aqz-KE-bpKQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := earnings.ParseVideoReference(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVideoReference_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"https://www.google.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/channel/abc123",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := earnings.ParseVideoReference(raw)
			assert.ErrorIs(t, err, models.ErrInvalidReference)
		})
	}
}

func TestSplitReferences(t *testing.T) {
	got := earnings.SplitReferences([]string{
		"https://www.youtube.com/@a\n\n  https://www.youtube.com/@b  \r\n",
		"   ",
		"@c",
	})

	assert.Equal(t, []string{"https://www.youtube.com/@a", "https://www.youtube.com/@b", "@c"}, got)
}
