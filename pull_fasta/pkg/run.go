package pullfasta

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fastats/pkg"
	"github.com/jgbaldwinbrown/iter"
)

func ParseRegions(mode Mode, r io.Reader, up, down int64) (iter.Iter[Interval], error) {
	switch mode {
	case ModeGff:
		return ParseGff(r), nil
	case ModeBed:
		return ParseBed(r), nil
	case ModePeak:
		return ApplyWindows(ParsePeak(r), up, down), nil
	}
	return nil, fmt.Errorf("ParseRegions: unknown mode %q", mode)
}

// ReadRegions parses a whole region table and canonicalizes it, keeping
// input order.
func ReadRegions(mode Mode, r io.Reader, up, down int64) ([]Region, error) {
	it, e := ParseRegions(mode, r, up, down)
	if e != nil {
		return nil, e
	}
	ivs, e := iter.Collect[Interval](it)
	if e != nil {
		return nil, e
	}
	return CanonicalizeAll(ivs)
}

func ReadRegionsPath(mode Mode, path string, up, down int64) ([]Region, error) {
	r, e := Open(path)
	if e != nil {
		return nil, e
	}
	defer r.Close()

	regions, e := ReadRegions(mode, r, up, down)
	return regions, withPath(e, path)
}

// Pull writes regions to a temporary BED file, runs the engine on it and
// pairs the engine output back up with the regions.
func Pull(ctx context.Context, ex Extractor, c Config, regions []Region) ([]fastats.FaEntry, error) {
	h := handle("Pull: %w")

	dir, e := os.MkdirTemp(c.TempDir, "pull_fasta_*")
	if e != nil {
		return nil, h(e)
	}
	if c.KeepTemp {
		log.Printf("keeping temporary files in %v", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	bedpath := filepath.Join(dir, "regions.bed")
	if e := WriteInterchangePath(bedpath, regions); e != nil {
		return nil, h(e)
	}

	var out bytes.Buffer
	if e := ex.Extract(ctx, c.Reference, bedpath, &out); e != nil {
		return nil, h(e)
	}
	if c.Verbose {
		log.Printf("engine wrote %v bytes for %v regions", out.Len(), len(regions))
	}

	fa, e := CorrelateReader(regions, &out, c.CheckHeaders)
	if e != nil {
		return nil, h(e)
	}
	return fa, nil
}

func writeOutput(path string, fa []fastats.FaEntry) (err error) {
	w, e := Create(path)
	if e != nil {
		return e
	}
	defer func() { csvh.DeferE(&err, w.Close()) }()
	return WriteFasta(w, iter.SliceIter[fastats.FaEntry](fa))
}

func removeOutput(path string) {
	if path == "-" {
		return
	}
	if e := os.Remove(path); e != nil && !os.IsNotExist(e) {
		log.Printf("removing %v: %v", path, e)
	}
}

func writeRunSummary(c Config, regions []Region) error {
	s, e := Summarize(c.Mode, regions)
	if e != nil {
		return e
	}
	return WriteSummaryPath(c.Summary, s)
}

// Run does one whole conversion. Nothing is left at c.Output unless every
// region was parsed, extracted and correlated and the summary was written.
func Run(ctx context.Context, c Config) error {
	h := handle("Run: %w")
	if e := c.Validate(); e != nil {
		return h(e)
	}
	ex, e := NewExtractor(c)
	if e != nil {
		return h(e)
	}

	regions, e := ReadRegionsPath(c.Mode, c.Input, c.Upstream, c.Downstream)
	if e != nil {
		return h(e)
	}
	if c.Verbose {
		log.Printf("read %v %v regions from %v", len(regions), c.Mode, c.Input)
	}

	var fa []fastats.FaEntry
	if len(regions) > 0 {
		fa, e = Pull(ctx, ex, c, regions)
		if e != nil {
			return h(e)
		}
	}

	if e := writeOutput(c.Output, fa); e != nil {
		removeOutput(c.Output)
		return h(e)
	}
	if c.Verbose {
		log.Printf("wrote %v records to %v", len(fa), c.Output)
	}

	if c.Summary != "" {
		if e := writeRunSummary(c, regions); e != nil {
			removeOutput(c.Output)
			return h(e)
		}
	}
	return nil
}
