package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yt-earnings/internal/earnings"
	"github.com/yt-earnings/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	youtubeAPIBaseURL = "https://www.googleapis.com/youtube/v3"
)

// Option customises how the YouTube API is reached
type Option func(*settings)

type settings struct {
	endpoint   string
	httpClient *http.Client
}

// WithEndpoint points both clients at a different API root, e.g. "http://127.0.0.1:9000/"
func WithEndpoint(endpoint string) Option {
	return func(s *settings) { s.endpoint = endpoint }
}

// WithHTTPClient replaces the HTTP client used for every request
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) { s.httpClient = client }
}

// YouTubeClient handles direct HTTP requests to YouTube API
type YouTubeClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewYouTubeClient creates a new YouTube client
func NewYouTubeClient(apiKey, baseURL string, client *http.Client) *YouTubeClient {
	if baseURL == "" {
		baseURL = youtubeAPIBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &YouTubeClient{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// GetVideoStatistics fetches the statistics part of a single video.
// Counters that are missing or not numeric are read as zero.
func (c *YouTubeClient) GetVideoStatistics(ctx context.Context, videoID string) (*models.VideoStatistics, error) {
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %w", models.ErrUpstream, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch video statistics: %w", models.ErrUpstream, redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: YouTube API returned status code: %d%s",
			models.ErrUpstream, resp.StatusCode, errorMessage(resp.Body))
	}

	var response models.VideoStatisticsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", models.ErrUpstream, err)
	}

	if len(response.Items) == 0 {
		return nil, nil
	}

	item := response.Items[0]
	stats := &models.VideoStatistics{ID: item.ID}
	if item.Statistics != nil {
		if views, err := strconv.ParseInt(item.Statistics.ViewCount, 10, 64); err == nil && views > 0 {
			stats.ViewCount = views
		}
	}
	return stats, nil
}

// errorMessage extracts the message of a Google API error body, if any
func errorMessage(body io.Reader) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil || payload.Error.Message == "" {
		return ""
	}
	return ": " + payload.Error.Message
}

// redact strips the query string, and with it the API key, from transport errors
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		}
	}
	return err
}

var _ earnings.DataSource = (*YouTubeAPI)(nil)

// YouTubeAPI handles YouTube API interactions for one credential
type YouTubeAPI struct {
	service *youtube.Service
	client  *YouTubeClient
}

// NewYouTubeAPI creates a new YouTube API adapter
func NewYouTubeAPI(ctx context.Context, apiKey models.Credential, opts ...Option) (*YouTubeAPI, error) {
	if apiKey == "" {
		return nil, models.ErrMissingCredential
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(string(apiKey))}
	baseURL := youtubeAPIBaseURL
	if s.endpoint != "" {
		endpoint := strings.TrimSuffix(s.endpoint, "/") + "/"
		clientOpts = append(clientOpts, option.WithEndpoint(endpoint))
		baseURL = endpoint + "youtube/v3"
	}
	if s.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(s.httpClient))
	}

	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubeAPI{
		service: service,
		client:  NewYouTubeClient(string(apiKey), baseURL, s.httpClient),
	}, nil
}

// NewSourceFactory returns a factory that builds one adapter per credential
func NewSourceFactory(opts ...Option) earnings.SourceFactory {
	return func(ctx context.Context, credential models.Credential) (earnings.DataSource, error) {
		return NewYouTubeAPI(ctx, credential, opts...)
	}
}

// VideoStatistics fetches view statistics for a video
func (y *YouTubeAPI) VideoStatistics(ctx context.Context, videoID string) (*models.VideoStatistics, error) {
	return y.client.GetVideoStatistics(ctx, videoID)
}

// SearchChannelVideos returns the IDs of the channel's most recent uploads
func (y *YouTubeAPI) SearchChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]string, error) {
	call := y.service.Search.List([]string{"id"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(maxResults)

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: error fetching videos: %w", models.ErrUpstream, redact(err))
	}

	videoIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item != nil && item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	return videoIDs, nil
}

// ChannelIDForUsername looks up a channel by its legacy custom name or username
func (y *YouTubeAPI) ChannelIDForUsername(ctx context.Context, username string) (string, error) {
	call := y.service.Channels.List([]string{"id"}).ForUsername(username)

	response, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: error fetching channel ID: %w", models.ErrUpstream, redact(err))
	}

	if len(response.Items) == 0 || response.Items[0] == nil {
		return "", nil
	}
	return response.Items[0].Id, nil
}

// SearchChannelByHandle searches channels with the handle as a free text query
func (y *YouTubeAPI) SearchChannelByHandle(ctx context.Context, handle string) (*models.ChannelIdentity, error) {
	call := y.service.Search.List([]string{"snippet"}).
		Q(handle).
		Type("channel").
		MaxResults(1)

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: error searching for channel: %w", models.ErrUpstream, redact(err))
	}

	if len(response.Items) == 0 || response.Items[0] == nil || response.Items[0].Id == nil {
		return nil, nil
	}

	item := response.Items[0]
	identity := &models.ChannelIdentity{ID: item.Id.ChannelId}
	if item.Snippet != nil {
		identity.DisplayName = item.Snippet.Title
	}
	return identity, nil
}

// ChannelTitle fetches the display name of a channel
func (y *YouTubeAPI) ChannelTitle(ctx context.Context, channelID string) (string, error) {
	call := y.service.Channels.List([]string{"snippet"}).Id(channelID)

	response, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: error fetching channel info: %w", models.ErrUpstream, redact(err))
	}

	if len(response.Items) == 0 || response.Items[0] == nil || response.Items[0].Snippet == nil {
		return "", nil
	}
	return response.Items[0].Snippet.Title, nil
}
