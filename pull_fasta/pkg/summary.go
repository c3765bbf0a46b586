package pullfasta

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/montanaflynn/stats"
)

type Summary struct {
	Mode         Mode
	Regions      int
	Bases        int64
	MeanLength   float64
	MedianLength float64
	MinLength    float64
	MaxLength    float64
}

func Summarize(mode Mode, regions []Region) (Summary, error) {
	s := Summary{Mode: mode, Regions: len(regions)}
	if len(regions) == 0 {
		return s, nil
	}

	lens := make(stats.Float64Data, 0, len(regions))
	for _, r := range regions {
		s.Bases += r.Len()
		lens = append(lens, float64(r.Len()))
	}

	var e error
	h := func(e error) (Summary, error) {
		return s, fmt.Errorf("Summarize: %w", e)
	}
	if s.MeanLength, e = stats.Mean(lens); e != nil {
		return h(e)
	}
	if s.MedianLength, e = stats.Median(lens); e != nil {
		return h(e)
	}
	if s.MinLength, e = stats.Min(lens); e != nil {
		return h(e)
	}
	if s.MaxLength, e = stats.Max(lens); e != nil {
		return h(e)
	}
	return s, nil
}

func WriteSummary(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(s)
}

func WriteSummaryPath(path string, s Summary) (err error) {
	w, e := csvh.CreateMaybeGz(path)
	if e != nil {
		return e
	}
	defer func() { csvh.DeferE(&err, w.Close()) }()
	return WriteSummary(w, s)
}
