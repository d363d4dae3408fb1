package models

// VideoStatistics holds the counters read for one video
type VideoStatistics struct {
	ID        string `json:"id"`
	ViewCount int64  `json:"viewCount"`
}

// VideoStatisticsResponse represents the videos.list response from YouTube API.
// Counters are kept as strings so malformed values can be read leniently.
type VideoStatisticsResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics *struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// VideoEstimate is the result of a single video earnings estimate
type VideoEstimate struct {
	VideoID  string        `json:"videoId"`
	Views    int64         `json:"views"`
	Earnings EarningsRange `json:"earnings"`
}
