package earnings

import "github.com/yt-earnings/internal/models"

// Rates are the revenue bounds per 1000 views (CPM) in USD
type Rates struct {
	MinCPM float64
	MaxCPM float64
}

// DefaultRates is the rough ad revenue range used when nothing else is configured
var DefaultRates = Rates{MinCPM: 0.2, MaxCPM: 4.0}

// Estimate converts a view count into an earnings range
func (r Rates) Estimate(views int64) models.EarningsRange {
	if views < 0 {
		views = 0
	}
	return models.EarningsRange{
		Min: float64(views) * r.MinCPM / 1000,
		Max: float64(views) * r.MaxCPM / 1000,
	}
}
