package pullfasta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// ReadJobs decodes a stream of JSON configs. Unset fields take the same
// defaults as the command line.
func ReadJobs(r io.Reader) ([]Config, error) {
	dec := json.NewDecoder(r)
	var jobs []Config
	for {
		j := DefaultConfig()
		e := dec.Decode(&j)
		if e == io.EOF {
			break
		}
		if e != nil {
			return nil, fmt.Errorf("ReadJobs: job %v: %w", len(jobs), e)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// RunMulti runs independent jobs, at most threads at a time (no limit when
// threads < 1). The first failure cancels the rest.
func RunMulti(ctx context.Context, threads int, jobs ...Config) error {
	g, ctx2 := errgroup.WithContext(ctx)
	if threads > 0 {
		g.SetLimit(threads)
	}
	for i, job := range jobs {
		i := i
		job := job
		g.Go(func() error {
			if e := Run(ctx2, job); e != nil {
				return fmt.Errorf("job %v (%v): %w", i, job.Input, e)
			}
			return nil
		})
	}
	return g.Wait()
}
