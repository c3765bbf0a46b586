package pullfasta

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jgbaldwinbrown/fastats/pkg"
	"github.com/jgbaldwinbrown/iter"
)

// Tokens splits engine output on any whitespace.
func Tokens(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	s.Buffer([]byte{}, 1e12)
	s.Split(bufio.ScanWords)

	var toks []string
	for s.Scan() {
		toks = append(toks, s.Text())
	}
	if e := s.Err(); e != nil {
		return nil, fmt.Errorf("Tokens: %w", e)
	}
	return toks, nil
}

// EngineHeader is the header bedtools getfasta -s writes for b.
func EngineHeader(b Bed6) string {
	return fmt.Sprintf(">%v:%v-%v(%v)", b.Chr, b.Start, b.End, b.Strand)
}

// FastaHeader is the output header, with 1-based inclusive coordinates.
func FastaHeader(b Bed6) string {
	return fmt.Sprintf("%v %v:%v-%v(%v)", b.Name, b.Chr, b.Start+1, b.End, b.Strand)
}

// Correlate pairs engine tokens with regions by position. The token count is
// checked before anything is paired, so a skipped region fails the whole run
// instead of shifting every later sequence onto the wrong record.
func Correlate(regions []Region, toks []string, checkHeaders bool) ([]fastats.FaEntry, error) {
	cerr := func(format string, args ...any) error {
		return &CorrelationError{Regions: len(regions), Tokens: len(toks), Msg: fmt.Sprintf(format, args...)}
	}

	if len(toks)%2 != 0 {
		return nil, cerr("odd token count leaves header %q without a sequence", toks[len(toks)-1])
	}
	if npairs := len(toks) / 2; npairs != len(regions) {
		return nil, cerr("%v header/sequence pairs for %v regions", npairs, len(regions))
	}

	out := make([]fastats.FaEntry, 0, len(regions))
	for i, r := range regions {
		if r.Pos != i {
			return nil, cerr("region from line %v is at position %v, expected %v", r.Line, i, r.Pos)
		}
		head, seq := toks[2*i], toks[2*i+1]
		if checkHeaders {
			if want := EngineHeader(r.Bed6); head != want {
				return nil, cerr("pair %v has header %q, expected %q", i, head, want)
			}
		}
		out = append(out, fastats.FaEntry{Header: FastaHeader(r.Bed6), Seq: seq})
	}
	return out, nil
}

func CorrelateReader(regions []Region, r io.Reader, checkHeaders bool) ([]fastats.FaEntry, error) {
	toks, e := Tokens(r)
	if e != nil {
		return nil, e
	}
	return Correlate(regions, toks, checkHeaders)
}

func WriteFasta(w io.Writer, it iter.Iter[fastats.FaEntry]) error {
	bw := bufio.NewWriter(w)
	e := it.Iterate(func(f fastats.FaEntry) error {
		_, e := fmt.Fprintf(bw, ">%v\n%v\n", f.Header, f.Seq)
		return e
	})
	if e != nil {
		return e
	}
	return bw.Flush()
}
