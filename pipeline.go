package hexpix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/hexpix/container"
)

// DefaultWorkers is the number of images compiled concurrently by Scan.
const DefaultWorkers = 10

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".bmp", ".gif", ".jpeg", ".jpg", ".png":
		return true
	default:
		return false
	}
}

func (h *HexPix) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)

		// Images differing only by extension share a container path, the
		// first one found wins
		claimed := make(map[string]string)

		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if !isImage(file) {
				h.logger.Printf("Skipping \"%s\"\n", file)
				return nil
			}

			dst := replaceExt(file, container.Extension)
			if other, ok := claimed[dst]; ok {
				h.logger.Printf("Skipping \"%s\", \"%s\" already compiles to \"%s\"\n", file, other, dst)
				return nil
			}
			claimed[dst] = file

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (h *HexPix) compileWorker(ctx context.Context, in <-chan string, opts CompileOptions) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if ctx.Err() != nil {
				return
			}
			if _, err := h.Compile(file, opts); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from errs. Once an error is seen
// cancel is called, and every channel is drained so no stage is still
// running when it returns.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path and compiles every image found to a hex container next to
// it, using workers goroutines. Hidden files and directories are ignored, as
// is any image whose container path was already claimed by another image
// in the same directory. Any output path in opts is ignored. Scan doesn't
// return until every worker has stopped.
func (h *HexPix) Scan(path string, opts CompileOptions, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if workers < 1 {
		workers = DefaultWorkers
	}
	opts.Output = ""

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := h.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := h.compileWorker(ctx, files, opts)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
