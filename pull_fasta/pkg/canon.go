package pullfasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iter"
)

// Canonicalize fills the defaults for absent columns and checks the
// interval. It moves no coordinates.
func Canonicalize(iv Interval) (Bed6, error) {
	var b Bed6
	if iv.Chr == "" {
		return b, formatErrorf(iv.Line, nil, "empty chromosome")
	}
	if !iv.Start.Ok || !iv.End.Ok {
		if iv.RefPoint.Ok {
			return b, formatErrorf(iv.Line, nil, "reference point %v was never widened into a window", iv.RefPoint.Val)
		}
		return b, formatErrorf(iv.Line, nil, "missing start or end")
	}

	start, end := iv.Start.Val, iv.End.Val
	if start < 0 {
		return b, formatErrorf(iv.Line, nil, "negative start %v", start)
	}
	if end <= start {
		return b, formatErrorf(iv.Line, nil, "end %v not after start %v", end, start)
	}

	b.ChrSpan = chrSpan(iv.Chr, start, end)
	b.Name = iv.Name.Or(".")
	b.Score = iv.Score.Or(0)
	b.Strand = iv.Strand.Or(NoStrand)

	if b.Name == "" {
		b.Name = "."
	}
	if strings.ContainsAny(b.Name, "\t\n") {
		return b, formatErrorf(iv.Line, nil, "name %q contains a tab or newline", b.Name)
	}
	return b, nil
}

func CanonicalizeAll(ivs []Interval) ([]Region, error) {
	regions := make([]Region, 0, len(ivs))
	for i, iv := range ivs {
		b, e := Canonicalize(iv)
		if e != nil {
			return nil, e
		}
		regions = append(regions, Region{Pos: i, Line: iv.Line, Bed6: b})
	}
	return regions, nil
}

func FprintBed6(w io.Writer, b Bed6) error {
	_, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n", b.Chr, b.Start, b.End, b.Name, FormatScore(b.Score), b.Strand)
	return e
}

// WriteInterchange writes the headerless BED6 rows the extraction engine
// reads, in input order.
func WriteInterchange(w io.Writer, it iter.Iter[Region]) error {
	bw := bufio.NewWriter(w)
	e := it.Iterate(func(r Region) error {
		return FprintBed6(bw, r.Bed6)
	})
	if e != nil {
		return e
	}
	return bw.Flush()
}

func WriteInterchangePath(path string, regions []Region) (err error) {
	h := handle("WriteInterchangePath: %w")
	w, e := csvh.CreateMaybeGz(path)
	if e != nil {
		return h(e)
	}
	defer func() { csvh.DeferE(&err, w.Close()) }()

	if e := WriteInterchange(w, iter.SliceIter[Region](regions)); e != nil {
		return h(e)
	}
	return nil
}
