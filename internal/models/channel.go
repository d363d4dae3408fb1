package models

// ReferenceKind identifies which YouTube address scheme a channel reference uses
type ReferenceKind int

const (
	ReferenceInvalid ReferenceKind = iota
	ReferenceCanonicalID
	ReferenceCustomName
	ReferenceHandle
)

// String returns the tag used in logs and API responses
func (k ReferenceKind) String() string {
	switch k {
	case ReferenceCanonicalID:
		return "channel_id"
	case ReferenceCustomName:
		return "custom_name"
	case ReferenceHandle:
		return "handle"
	default:
		return "invalid"
	}
}

// ChannelReference is a user supplied channel address after shape detection.
// Value holds the extracted channel ID, custom name or handle (without "@").
type ChannelReference struct {
	Raw   string        `json:"raw"`
	Kind  ReferenceKind `json:"-"`
	Value string        `json:"-"`
}

// ChannelIdentity represents a resolved YouTube channel
type ChannelIdentity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}

// ChannelStats holds the view totals of the most recent page of channel uploads
type ChannelStats struct {
	ChannelID  string `json:"channelId"`
	VideoCount int    `json:"videoCount"`
	TotalViews int64  `json:"totalViews"`
}

// ChannelEstimate is the result of a single channel earnings estimate
type ChannelEstimate struct {
	ChannelID   string        `json:"channelId"`
	ChannelName string        `json:"channelName"`
	Reference   string        `json:"reference"`
	VideoCount  int           `json:"videoCount"`
	TotalViews  int64         `json:"totalViews"`
	Earnings    EarningsRange `json:"earnings"`
}
