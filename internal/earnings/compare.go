package earnings

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yt-earnings/internal/models"
)

// Compare estimates earnings for every reference and keeps going when one fails.
// Rows and failures come back in input order regardless of the worker count.
// The only error returned is for a session without a credential.
func (s *Service) Compare(ctx context.Context, sess *Session, references []string) (models.ComparisonResult, error) {
	if err := sess.validate(); err != nil {
		return models.ComparisonResult{}, err
	}

	refs := SplitReferences(references)
	rows := make([]*models.ComparisonRow, len(refs))
	failures := make([]*models.ComparisonFailure, len(refs))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, raw := range refs {
		i, raw := i, raw
		g.Go(func() error {
			row, err := s.compareOne(ctx, sess, raw)
			if err != nil {
				log.Printf("Skipping channel %s: %v", raw, err)
				failures[i] = &models.ComparisonFailure{
					Reference: raw,
					Kind:      models.ErrorKind(err),
					Error:     err.Error(),
				}
				return nil
			}
			rows[i] = row
			return nil
		})
	}
	// compareOne never returns through the group, so Wait has nothing to report
	_ = g.Wait()

	result := models.ComparisonResult{
		Rows:     make([]models.ComparisonRow, 0, len(refs)),
		Failures: make([]models.ComparisonFailure, 0),
	}
	for i := range refs {
		if rows[i] != nil {
			result.Rows = append(result.Rows, *rows[i])
		}
		if failures[i] != nil {
			result.Failures = append(result.Failures, *failures[i])
		}
	}
	return result, nil
}

func (s *Service) compareOne(ctx context.Context, sess *Session, raw string) (*models.ComparisonRow, error) {
	identity, err := s.Resolve(ctx, sess, ClassifyReference(raw))
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

	return &models.ComparisonRow{
		ChannelName: name,
		Earnings:    s.rates.Estimate(stats.TotalViews),
		Reference:   raw,
	}, nil
}

// SplitReferences trims every reference, splits multi-line entries and drops blanks
func SplitReferences(references []string) []string {
	var out []string
	for _, entry := range references {
		for _, line := range strings.Split(entry, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}
