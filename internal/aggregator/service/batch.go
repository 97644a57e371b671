package service

import (
	"context"

	"halal_scanner_backend/internal/aggregator/client"
	"halal_scanner_backend/internal/aggregator/transport"

	"golang.org/x/sync/errgroup"
)

// call is one provider invocation within a batch.
type call struct {
	source string
	fetch  func(ctx context.Context) transport.Outcome
}

// runBatch dispatches calls concurrently and waits for all of them. Outcomes
// are returned in dispatch order. A failing call never cancels its siblings,
// so the group is created without a derived context.
func (a *Aggregator) runBatch(ctx context.Context, stage string, calls []call) []transport.Outcome {
	outcomes := make([]transport.Outcome, len(calls))

	var g errgroup.Group
	for i, c := range calls {
		i, c := i, c
		g.Go(func() error {
			outcomes[i] = invoke(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	a.log.WithContext(ctx).BatchCompleted(stage, len(calls), transport.CountSuccesses(outcomes))
	return outcomes
}

// invoke guards a single call so that a misbehaving provider still yields a
// failed outcome under its own source name.
func invoke(ctx context.Context, c call) (out transport.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = transport.Outcome{Source: c.source, Error: client.ReasonMalformed}
		}
	}()
	out = c.fetch(ctx)
	if out.Source == "" {
		out.Source = c.source
	}
	return out
}
