package driverio

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// PrepareRun reads and parses the input file while concurrently ensuring
// the output directory exists, so neither has to wait on the other. Both
// legs are I/O-bound and independent of each other and of the single-
// threaded bitvector core; this never touches query execution.
func PrepareRun(ctx context.Context, inputPath, outputPath string) (Input, error) {
	g, ctx := errgroup.WithContext(ctx)

	var input Input
	g.Go(func() error {
		var err error
		input, err = ReadInputFile(inputPath)
		return err
	})

	if outputPath != "" {
		g.Go(func() error {
			dir := filepath.Dir(outputPath)
			if dir == "." || dir == "" {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return os.MkdirAll(dir, 0o755)
		})
	}

	if err := g.Wait(); err != nil {
		return Input{}, err
	}
	return input, nil
}
