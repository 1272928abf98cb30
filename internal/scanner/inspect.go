package scanner

import (
	"sync"

	"media-catalog/internal/mediatypes"
	"media-catalog/internal/probe"
)

// maxInspectWorkers caps the per-directory inspection pool.
const maxInspectWorkers = 8

type inspection struct {
	metadata  probe.Metadata
	subtitles []string
}

// inspectAll probes metadata and finds subtitles for each candidate, using
// up to s.workers goroutines. Results are in candidate order.
func (s *Scanner) inspectAll(cands []candidate) []inspection {
	out := make([]inspection, len(cands))

	n := min(s.workers, len(cands))
	if n <= 1 {
		for i, c := range cands {
			out[i] = s.inspect(c)
		}
		return out
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = s.inspect(cands[i])
			}
		}()
	}
	for i := range cands {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

func (s *Scanner) inspect(c candidate) inspection {
	ins := inspection{metadata: s.probeMetadata(c)}
	if c.fileType == mediatypes.FileTypeVideo {
		ins.subtitles = s.findSubtitles(c.path)
	}
	return ins
}
