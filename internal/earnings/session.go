package earnings

import (
	"context"
	"errors"
	"fmt"

	"github.com/yt-earnings/internal/models"
)

// DataSource is the subset of the YouTube Data API the estimator consumes.
// Lookups that find nothing return a nil pointer or an empty string with a nil error.
type DataSource interface {
	VideoStatistics(ctx context.Context, videoID string) (*models.VideoStatistics, error)
	SearchChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]string, error)
	ChannelIDForUsername(ctx context.Context, username string) (string, error)
	SearchChannelByHandle(ctx context.Context, handle string) (*models.ChannelIdentity, error)
	ChannelTitle(ctx context.Context, channelID string) (string, error)
}

// SourceFactory builds a DataSource bound to one credential
type SourceFactory func(ctx context.Context, credential models.Credential) (DataSource, error)

// Session carries the credential and the API client of a single caller.
// Every resolver and aggregator call takes one explicitly.
type Session struct {
	Credential models.Credential
	Source     DataSource
}

// NewSession creates a session from an already built data source
func NewSession(credential models.Credential, source DataSource) *Session {
	return &Session{Credential: credential, Source: source}
}

// OpenSession validates the credential and only then builds the data source
func OpenSession(ctx context.Context, credential models.Credential, factory SourceFactory) (*Session, error) {
	if credential == "" {
		return nil, models.ErrMissingCredential
	}
	source, err := factory(ctx, credential)
	if err != nil {
		return nil, upstream("failed to create YouTube service", err)
	}
	return NewSession(credential, source), nil
}

func (s *Session) validate() error {
	if s == nil || s.Credential == "" {
		return models.ErrMissingCredential
	}
	if s.Source == nil {
		return fmt.Errorf("%w: session has no YouTube client", models.ErrMissingCredential)
	}
	return nil
}

// upstream tags err as an upstream failure unless it already carries a tag
func upstream(action string, err error) error {
	if errors.Is(err, models.ErrUpstream) ||
		errors.Is(err, models.ErrResolutionNotFound) ||
		errors.Is(err, models.ErrInvalidReference) {
		return fmt.Errorf("%s: %w", action, err)
	}
	return fmt.Errorf("%w: %s: %w", models.ErrUpstream, action, err)
}
