package ecg

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// DenoiseAll runs Denoise on every lead concurrently with at most
// GOMAXPROCS leads in flight. Results keep the order of leads. Leads not
// started before ctx is cancelled report ctx.Err(); all failures are
// combined into the returned error.
func DenoiseAll(ctx context.Context, leads []core.Signal, opts ...Option) ([]Result, error) {
	results := make([]Result, len(leads))
	errs := make([]error, len(leads))

	sem := make(chan struct{}, max(runtime.GOMAXPROCS(0), 1))
	var wg sync.WaitGroup

	for i, lead := range leads {
		select {
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, lead core.Signal) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}

			res, err := Denoise(lead.Samples, lead.Fs, opts...)
			if err != nil {
				errs[i] = fmt.Errorf("ecg: lead %d: %w", i, err)
				return
			}
			results[i] = res
		}(i, lead)
	}

	wg.Wait()

	return results, multierr.Combine(errs...)
}
