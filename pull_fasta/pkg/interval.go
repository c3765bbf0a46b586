package pullfasta

import (
	"fmt"
	"strconv"

	"github.com/jgbaldwinbrown/fastats/pkg"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

// Opt is a column that a source format may or may not provide.
type Opt[T any] struct {
	Val T
	Ok  bool
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{Val: v, Ok: true}
}

func (o Opt[T]) Or(def T) T {
	if o.Ok {
		return o.Val
	}
	return def
}

type Strand string

const (
	Plus     Strand = "+"
	Minus    Strand = "-"
	NoStrand Strand = "."
)

func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case ".":
		return NoStrand, nil
	}
	return NoStrand, fmt.Errorf("invalid strand %q", s)
}

// Interval is one region as read from any of the input formats. Fields a
// format does not carry are left unset until Canonicalize.
type Interval struct {
	Line       int
	Chr        string
	Start      Opt[int64]
	End        Opt[int64]
	Name       Opt[string]
	Score      Opt[float64]
	Strand     Opt[Strand]
	Attributes map[string]string
	RefPoint   Opt[int64]
}

// Bed6 is the fixed interchange row: chrom, start, end, name, score, strand.
type Bed6 struct {
	fastats.ChrSpan
	Name   string
	Score  float64
	Strand Strand
}

func (b Bed6) Interval() Interval {
	return Interval{
		Chr:    b.Chr,
		Start:  Some(b.Start),
		End:    Some(b.End),
		Name:   Some(b.Name),
		Score:  Some(b.Score),
		Strand: Some(b.Strand),
	}
}

func (b Bed6) Len() int64 {
	return b.End - b.Start
}

func FormatScore(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Region is a canonical row plus its position in the run. Pos is what the
// engine output is paired against.
type Region struct {
	Pos  int
	Line int
	Bed6
}

func chrSpan(chr string, start, end int64) fastats.ChrSpan {
	return fastats.ChrSpan{Chr: chr, Span: fastats.Span{Start: start, End: end}}
}
