package main

import (
	"context"
	"time"

	"github.com/gorhill/cronexpr"
)

// CronScope updates the ambient "now" variable (RFC 3339) on the
// given cron schedule, so time-dependent expressions re-render on a
// clock instead of never.
//
// Blocks until the context is done.
func (s *Service) CronScope(ctx context.Context, schedule string) error {
	c, err := cronexpr.Parse(schedule)
	if err != nil {
		return err
	}

	s.SetScopeVar("now", time.Now().UTC().Format(time.RFC3339))

	for {
		next := c.Next(time.Now())
		if next.IsZero() {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(next.Sub(time.Now())):
			s.SetScopeVar("now", time.Now().UTC().Format(time.RFC3339))
		}
	}
}
