package models

// Credential is the YouTube Data API key supplied by the caller
type Credential string

// EarningsRange is an estimated revenue interval in USD
type EarningsRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ComparisonRow is one channel in a comparison result
type ComparisonRow struct {
	ChannelName string        `json:"channelName"`
	Earnings    EarningsRange `json:"earnings"`
	Reference   string        `json:"reference"`
}

// ComparisonFailure records a reference that was skipped during a comparison
type ComparisonFailure struct {
	Reference string `json:"reference"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

// ComparisonResult holds rows and failures, both in input order
type ComparisonResult struct {
	Rows     []ComparisonRow     `json:"rows"`
	Failures []ComparisonFailure `json:"failures"`
}
