package earnings

import (
	"context"
	"fmt"
	"log"

	"github.com/yt-earnings/internal/models"
)

// PageSize is the number of most recent uploads considered per channel.
// Only the first search page is read.
const PageSize int64 = 10

// Options configures a Service
type Options struct {
	Rates   Rates
	Workers int
}

// Service resolves channels, aggregates views and estimates earnings.
// It holds no caller state; credentials travel in the Session argument.
type Service struct {
	rates   Rates
	workers int
}

// NewService creates a new earnings service
func NewService(opts Options) *Service {
	rates := opts.Rates
	if rates == (Rates{}) {
		rates = DefaultRates
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Service{rates: rates, workers: workers}
}

// Rates returns the CPM bounds used by the service
func (s *Service) Rates() Rates {
	return s.rates
}

// Resolve turns a classified channel reference into a canonical channel ID.
// When a lookup returns several candidates the first one is used.
func (s *Service) Resolve(ctx context.Context, sess *Session, ref models.ChannelReference) (models.ChannelIdentity, error) {
	if err := sess.validate(); err != nil {
		return models.ChannelIdentity{}, err
	}

	switch ref.Kind {
	case models.ReferenceCanonicalID:
		return models.ChannelIdentity{ID: ref.Value}, nil

	case models.ReferenceCustomName:
		channelID, err := sess.Source.ChannelIDForUsername(ctx, ref.Value)
		if err != nil {
			return models.ChannelIdentity{}, upstream("failed to fetch channel ID", err)
		}
		if channelID == "" {
			return models.ChannelIdentity{}, fmt.Errorf("%w: no channel found for URL: %s", models.ErrResolutionNotFound, ref.Value)
		}
		return models.ChannelIdentity{ID: channelID, DisplayName: ref.Value}, nil

	case models.ReferenceHandle:
		identity, err := sess.Source.SearchChannelByHandle(ctx, ref.Value)
		if err != nil {
			return models.ChannelIdentity{}, upstream("failed to search channel handle", err)
		}
		if identity == nil || identity.ID == "" {
			return models.ChannelIdentity{}, fmt.Errorf("%w: no channel found for handle: @%s", models.ErrResolutionNotFound, ref.Value)
		}
		return *identity, nil

	default:
		return models.ChannelIdentity{}, fmt.Errorf("%w: %q", models.ErrInvalidReference, ref.Raw)
	}
}

// Aggregate sums the view counts of the channel's most recent uploads.
// A video without statistics counts as zero; any failed call aborts the sum.
func (s *Service) Aggregate(ctx context.Context, sess *Session, identity models.ChannelIdentity) (models.ChannelStats, error) {
	if err := sess.validate(); err != nil {
		return models.ChannelStats{}, err
	}

	videoIDs, err := sess.Source.SearchChannelVideos(ctx, identity.ID, PageSize)
	if err != nil {
		return models.ChannelStats{}, upstream("failed to fetch channel videos", err)
	}

	stats := models.ChannelStats{ChannelID: identity.ID, VideoCount: len(videoIDs)}
	for _, videoID := range videoIDs {
		video, err := sess.Source.VideoStatistics(ctx, videoID)
		if err != nil {
			return models.ChannelStats{}, upstream("failed to fetch video statistics", err)
		}
		if video == nil {
			log.Printf("No statistics for video %s, counting 0 views", videoID)
			continue
		}
		if video.ViewCount > 0 {
			stats.TotalViews += video.ViewCount
		}
	}
	return stats, nil
}

// EstimateVideo estimates earnings for a single video URL or ID
func (s *Service) EstimateVideo(ctx context.Context, sess *Session, rawURL string) (*models.VideoEstimate, error) {
	if err := sess.validate(); err != nil {
		return nil, err
	}

	videoID, err := ParseVideoReference(rawURL)
	if err != nil {
		return nil, err
	}

	video, err := sess.Source.VideoStatistics(ctx, videoID)
	if err != nil {
		return nil, upstream("failed to fetch video statistics", err)
	}
	if video == nil {
		return nil, fmt.Errorf("%w: no data found for video %s", models.ErrResolutionNotFound, videoID)
	}

	return &models.VideoEstimate{
		VideoID:  videoID,
		Views:    video.ViewCount,
		Earnings: s.rates.Estimate(video.ViewCount),
	}, nil
}

// EstimateChannel resolves a channel reference and estimates its earnings
func (s *Service) EstimateChannel(ctx context.Context, sess *Session, rawRef string) (*models.ChannelEstimate, error) {
	if err := sess.validate(); err != nil {
		return nil, err
	}

	ref := ClassifyReference(rawRef)
	log.Printf("Resolving channel reference %s (%s)", rawRef, ref.Kind)

	identity, err := s.Resolve(ctx, sess, ref)
	if err != nil {
		return nil, err
	}

	stats, err := s.Aggregate(ctx, sess, identity)
	if err != nil {
		return nil, err
	}

	name, err := channelName(ctx, sess, identity.ID)
	if err != nil {
		return nil, err
	}

	return &models.ChannelEstimate{
		ChannelID:   identity.ID,
		ChannelName: name,
		Reference:   rawRef,
		VideoCount:  stats.VideoCount,
		TotalViews:  stats.TotalViews,
		Earnings:    s.rates.Estimate(stats.TotalViews),
	}, nil
}

func channelName(ctx context.Context, sess *Session, channelID string) (string, error) {
	title, err := sess.Source.ChannelTitle(ctx, channelID)
	if err != nil {
		return "", upstream("failed to fetch channel info", err)
	}
	if title == "" {
		return "", fmt.Errorf("%w: channel %s", models.ErrResolutionNotFound, channelID)
	}
	return title, nil
}
