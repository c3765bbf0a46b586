package pullfasta

import (
	"errors"

	"github.com/jgbaldwinbrown/iter"
)

// Window returns the half-open interval around ref. Upstream and downstream
// follow the direction of transcription, so they swap sides on the minus
// strand.
func Window(ref int64, strand Strand, up, down int64) (start, end int64, err error) {
	if up < 0 || down < 0 {
		return 0, 0, formatErrorf(0, nil, "negative window extent (upstream %v, downstream %v)", up, down)
	}
	switch strand {
	case Plus:
		return ref - up - 1, ref + down, nil
	case Minus:
		return ref - down - 1, ref + up, nil
	}
	return 0, 0, formatErrorf(0, nil, "strand %q has no upstream or downstream", strand)
}

func ApplyWindow(iv Interval, up, down int64) (Interval, error) {
	if !iv.RefPoint.Ok {
		return iv, formatErrorf(iv.Line, nil, "no reference point to build a window around")
	}
	if !iv.Strand.Ok {
		return iv, formatErrorf(iv.Line, nil, "no strand to orient a window")
	}

	start, end, e := Window(iv.RefPoint.Val, iv.Strand.Val, up, down)
	if e != nil {
		var fe *FormatError
		if errors.As(e, &fe) {
			fe.Line = iv.Line
		}
		return iv, e
	}

	iv.Start = Some(start)
	iv.End = Some(end)
	iv.Score = Some(0.0)
	iv.RefPoint = Opt[int64]{}
	return iv, nil
}

func ApplyWindows(it iter.Iter[Interval], up, down int64) *iter.Iterator[Interval] {
	return iter.Transform[Interval, Interval](it, func(iv Interval) (Interval, error) {
		return ApplyWindow(iv, up, down)
	})
}
