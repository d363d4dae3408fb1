package earnings_test

import (
	"context"
	"sync"

	"github.com/yt-earnings/internal/models"
)

// fakeSource is an in-memory DataSource that records every call it receives
type fakeSource struct {
	mu sync.Mutex

	videos        map[string]*models.VideoStatistics
	videoErrs     map[string]error
	channelVideos map[string][]string
	searchErr     error
	usernames     map[string]string
	handles       map[string]*models.ChannelIdentity
	handleErr     error
	titles        map[string]string
	titleErrs     map[string]error

	calls []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		videos:        map[string]*models.VideoStatistics{},
		videoErrs:     map[string]error{},
		channelVideos: map[string][]string{},
		usernames:     map[string]string{},
		handles:       map[string]*models.ChannelIdentity{},
		titles:        map[string]string{},
		titleErrs:     map[string]error{},
	}
}

func (f *fakeSource) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSource) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeSource) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSource) VideoStatistics(_ context.Context, videoID string) (*models.VideoStatistics, error) {
	f.record("videos:" + videoID)
	if err := f.videoErrs[videoID]; err != nil {
		return nil, err
	}
	return f.videos[videoID], nil
}

func (f *fakeSource) SearchChannelVideos(_ context.Context, channelID string, _ int64) ([]string, error) {
	f.record("search:" + channelID)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.channelVideos[channelID], nil
}

func (f *fakeSource) ChannelIDForUsername(_ context.Context, username string) (string, error) {
	f.record("username:" + username)
	return f.usernames[username], nil
}

func (f *fakeSource) SearchChannelByHandle(_ context.Context, handle string) (*models.ChannelIdentity, error) {
	f.record("handle:" + handle)
	if f.handleErr != nil {
		return nil, f.handleErr
	}
	return f.handles[handle], nil
}

func (f *fakeSource) ChannelTitle(_ context.Context, channelID string) (string, error) {
	f.record("title:" + channelID)
	if err := f.titleErrs[channelID]; err != nil {
		return "", err
	}
	return f.titles[channelID], nil
}
