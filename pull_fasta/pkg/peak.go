package pullfasta

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iter"
)

const (
	PeakChrom        = "Chromosome"
	PeakStrand       = "Strand"
	PeakModeLocation = "ModeLocation"
	PeakGeneName     = "GeneName"
	PeakTranscriptID = "TranscriptID"
)

type peakCols struct {
	Chrom      int
	Strand     int
	Loc        int
	Gene       int
	Transcript int
	Need       int
}

func getPeakCols(header []string) (peakCols, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}

	var missing []string
	get := func(name string, required bool) int {
		i, ok := idx[name]
		if !ok {
			if required {
				missing = append(missing, name)
			}
			return -1
		}
		return i
	}

	c := peakCols{
		Chrom:      get(PeakChrom, true),
		Strand:     get(PeakStrand, true),
		Loc:        get(PeakModeLocation, true),
		Gene:       get(PeakGeneName, false),
		Transcript: get(PeakTranscriptID, false),
	}
	if len(missing) > 0 {
		return c, formatErrorf(1, nil, "peak header missing columns %v", strings.Join(missing, ", "))
	}

	for _, i := range []int{c.Chrom, c.Strand, c.Loc} {
		if i+1 > c.Need {
			c.Need = i + 1
		}
	}
	return c, nil
}

func field(line []string, i int) string {
	if i < 0 || i >= len(line) {
		return ""
	}
	return strings.TrimSpace(line[i])
}

func parsePeakLine(c peakCols, line []string, lnum int) (Interval, error) {
	var iv Interval
	iv.Line = lnum
	if len(line) < c.Need {
		return iv, formatErrorf(lnum, nil, "peak row has %v fields, need at least %v", len(line), c.Need)
	}

	iv.Chr = field(line, c.Chrom)

	strand, e := ParseStrand(field(line, c.Strand))
	if e != nil {
		return iv, formatErrorf(lnum, e, "bad peak strand")
	}
	iv.Strand = Some(strand)

	loc, e := strconv.ParseInt(field(line, c.Loc), 10, 64)
	if e != nil {
		return iv, formatErrorf(lnum, e, "bad %v %q", PeakModeLocation, field(line, c.Loc))
	}
	iv.RefPoint = Some(loc)

	name := field(line, c.Gene)
	if name == "" {
		name = field(line, c.Transcript)
	}
	if name == "" {
		name = "."
	}
	iv.Name = Some(name)

	return iv, nil
}

func peakReader(r io.Reader) *csv.Reader {
	cr := csvh.CsvIn(r)
	cr.Comma = ','
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// ParsePeak reads a comma separated TSS/peak table. Only the chromosome,
// strand, mode location and a name survive; read counts and shape columns
// are dropped.
func ParsePeak(r io.Reader) *iter.Iterator[Interval] {
	return &iter.Iterator[Interval]{Iteratef: func(yield func(Interval) error) error {
		cr := peakReader(r)

		header, e := cr.Read()
		if e == io.EOF {
			return formatErrorf(1, nil, "empty peak table")
		}
		if e != nil {
			return formatErrorf(0, e, "reading peak header")
		}
		c, e := getPeakCols(header)
		if e != nil {
			return e
		}

		for l, e := cr.Read(); e != io.EOF; l, e = cr.Read() {
			if e != nil {
				return formatErrorf(0, e, "reading peak table")
			}
			if isBlank(l) {
				continue
			}

			lnum, _ := cr.FieldPos(0)
			iv, e := parsePeakLine(c, l, lnum)
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
