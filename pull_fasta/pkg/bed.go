package pullfasta

import (
	"io"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fasttsv"
	"github.com/jgbaldwinbrown/iter"
)

// ParseBedLine reads the first six BED columns. Columns 7-12 are accepted
// and ignored.
func ParseBedLine(line []string, lnum int) (Interval, error) {
	var iv Interval
	iv.Line = lnum
	if len(line) < 3 {
		return iv, formatErrorf(lnum, nil, "bed row has %v fields, need at least 3", len(line))
	}

	var start, end int64
	if _, e := csvh.Scan(line[:3], &iv.Chr, &start, &end); e != nil {
		return iv, formatErrorf(lnum, e, "bad bed coordinates %q %q", line[1], line[2])
	}
	iv.Start = Some(start)
	iv.End = Some(end)

	if len(line) > 3 {
		iv.Name = Some(line[3])
	}
	if len(line) > 4 && line[4] != "." {
		score, e := strconv.ParseFloat(line[4], 64)
		if e != nil {
			return iv, formatErrorf(lnum, e, "bad bed score %q", line[4])
		}
		iv.Score = Some(score)
	}
	if len(line) > 5 {
		strand, e := ParseStrand(line[5])
		if e != nil {
			return iv, formatErrorf(lnum, e, "bad bed strand")
		}
		iv.Strand = Some(strand)
	}
	return iv, nil
}

func skipBedLine(line []string) bool {
	if isBlank(line) {
		return true
	}
	f := line[0]
	return strings.HasPrefix(f, "#") ||
		f == "track" || strings.HasPrefix(f, "track ") ||
		f == "browser" || strings.HasPrefix(f, "browser ")
}

func trimCR(line []string) []string {
	if n := len(line); n > 0 {
		line[n-1] = strings.TrimSuffix(line[n-1], "\r")
	}
	return line
}

func ParseBed(r io.Reader) *iter.Iterator[Interval] {
	return &iter.Iterator[Interval]{Iteratef: func(yield func(Interval) error) error {
		s := fasttsv.NewScanner(r)
		lnum := 0
		for s.Scan() {
			lnum++
			line := trimCR(s.Line())
			if skipBedLine(line) {
				continue
			}

			iv, e := ParseBedLine(line, lnum)
			if e != nil {
				return e
			}
			if e := yield(iv); e != nil {
				return e
			}
		}
		return nil
	}}
}
