package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"media-catalog/internal/mediatypes"
	"media-catalog/internal/probe"
)

// pathProber reports the index encoded in the file name as the width.
type pathProber struct {
	calls atomic.Int32
}

func (p *pathProber) Probe(path string, _ mediatypes.FileType) (probe.Metadata, error) {
	p.calls.Add(1)
	var n int
	if _, err := fmt.Sscanf(filepath.Base(path), "img%03d.png", &n); err != nil {
		return probe.Metadata{}, err
	}
	return probe.Metadata{Width: &n}, nil
}

func TestInspectAllKeepsOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 4, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			prober := &pathProber{}
			s := New(nil, WithProber(prober), WithWorkers(workers))

			cands := make([]candidate, 40)
			for i := range cands {
				cands[i] = candidate{
					path:     filepath.Join("/media", fmt.Sprintf("img%03d.png", i)),
					fileType: mediatypes.FileTypeImage,
				}
			}

			got := s.inspectAll(cands)
			if len(got) != len(cands) {
				t.Fatalf("got %d inspections, want %d", len(got), len(cands))
			}
			for i, ins := range got {
				if ins.metadata.Width == nil || *ins.metadata.Width != i {
					t.Fatalf("inspection %d out of order: %+v", i, ins.metadata)
				}
			}
			if int(prober.calls.Load()) != len(cands) {
				t.Errorf("prober called %d times, want %d", prober.calls.Load(), len(cands))
			}
		})
	}
}

func TestInspectFindsSubtitlesForVideosOnly(t *testing.T) {
	var asked []string
	s := New(nil, WithWorkers(1), WithSubtitleFinder(func(p string) []string {
		asked = append(asked, p)
		return []string{p + ".srt"}
	}))

	got := s.inspectAll([]candidate{
		{path: "/m/a.mp4", fileType: mediatypes.FileTypeVideo},
		{path: "/m/b.jpg", fileType: mediatypes.FileTypeImage},
	})

	if len(got[0].subtitles) != 1 || got[1].subtitles != nil {
		t.Errorf("unexpected subtitles: %+v", got)
	}
	if len(asked) != 1 || asked[0] != "/m/a.mp4" {
		t.Errorf("subtitle finder asked for %v", asked)
	}
}

func TestScanWithParallelInspection(t *testing.T) {
	db := setupTestDB(t)
	root := t.TempDir()

	files := map[string]string{}
	for i := 0; i < 25; i++ {
		files[fmt.Sprintf("img%03d.png", i)] = "x"
	}
	writeTree(t, root, files)

	prober := &pathProber{}
	mustScan(t, New(db, WithProber(prober), WithWorkers(6)), root)

	for i := 0; i < 25; i++ {
		f, err := db.GetFileByPath(context.Background(), filepath.Join(root, fmt.Sprintf("img%03d.png", i)))
		if err != nil {
			t.Fatalf("file %d not cataloged: %v", i, err)
		}
		if f.Width == nil || *f.Width != i {
			t.Errorf("file %d has width %v", i, f.Width)
		}
	}
}
