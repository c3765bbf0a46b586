package pullfasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/biogo/hts/fai"
	"github.com/jgbaldwinbrown/iter"
)

// Extractor turns an interchange BED6 file and a reference into a stream of
// alternating header and sequence tokens, one pair per extracted row.
type Extractor interface {
	Extract(ctx context.Context, reference, bedpath string, w io.Writer) error
}

const (
	EngineBedtools = "bedtools"
	EngineFasta    = "fasta"
)

func NewExtractor(cfg Config) (Extractor, error) {
	switch cfg.Engine {
	case "", EngineBedtools:
		return Bedtools{Path: cfg.Bedtools}, nil
	case EngineFasta:
		return FastaEngine{}, nil
	}
	return nil, fmt.Errorf("NewExtractor: unknown engine %q", cfg.Engine)
}

type Bedtools struct {
	Path string
}

func (b Bedtools) Extract(ctx context.Context, reference, bedpath string, w io.Writer) error {
	bin := b.Path
	if bin == "" {
		bin = "bedtools"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "getfasta", "-fi", reference, "-bed", bedpath, "-s")
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if e := cmd.Run(); e != nil {
		return &ExternalToolError{Cmd: strings.Join(cmd.Args, " "), Stderr: stderr.String(), Err: e}
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Printf("%v: %v", bin, msg)
	}
	return nil
}

type refSource interface {
	Range(chr string, start, end int64) (seq []byte, ok bool, err error)
	Close() error
}

type memRef map[string]*linear.Seq

func (m memRef) Range(chr string, start, end int64) ([]byte, bool, error) {
	s, ok := m[chr]
	if !ok || end > int64(len(s.Seq)) {
		return nil, false, nil
	}
	out := make([]byte, 0, end-start)
	for _, l := range s.Seq[start:end] {
		out = append(out, byte(l))
	}
	return out, true, nil
}

func (m memRef) Close() error {
	return nil
}

type faiRef struct {
	fp  *os.File
	idx fai.Index
	f   *fai.File
}

func (r *faiRef) Range(chr string, start, end int64) ([]byte, bool, error) {
	rec, ok := r.idx[chr]
	if !ok || end > int64(rec.Length) {
		return nil, false, nil
	}
	s, e := r.f.SeqRange(chr, int(start), int(end))
	if e != nil {
		return nil, false, e
	}
	b, e := io.ReadAll(s)
	return b, e == nil, e
}

func (r *faiRef) Close() error {
	return r.fp.Close()
}

func openFaiRef(path string) (*faiRef, error) {
	ir, e := os.Open(path + ".fai")
	if e != nil {
		return nil, e
	}
	idx, e := fai.ReadFrom(ir)
	ir.Close()
	if e != nil {
		return nil, fmt.Errorf("reading %v.fai: %w", path, e)
	}

	fp, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	return &faiRef{fp: fp, idx: idx, f: fai.NewFile(fp, idx)}, nil
}

func readMemRef(path string) (memRef, error) {
	fp, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer fp.Close()

	m := memRef{}
	sc := seqio.NewScanner(fasta.NewReader(bufio.NewReader(fp), linear.NewSeq("", nil, alphabet.DNAredundant)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		m[s.ID] = s
	}
	if e := sc.Error(); e != nil {
		return nil, fmt.Errorf("reading %v: %w", path, e)
	}
	return m, nil
}

// openRef uses the samtools index next to the reference when there is one
// and otherwise loads the whole reference into memory.
func openRef(path string) (refSource, error) {
	if _, e := os.Stat(path + ".fai"); e == nil {
		return openFaiRef(path)
	}
	return readMemRef(path)
}

func RevComp(b []byte) []byte {
	ls := make(alphabet.Letters, len(b))
	for i, c := range b {
		ls[i] = alphabet.Letter(c)
	}
	s := linear.NewSeq("", ls, alphabet.DNAredundant)
	s.RevComp()

	out := make([]byte, len(s.Seq))
	for i, l := range s.Seq {
		out[i] = byte(l)
	}
	return out
}

// FastaEngine extracts in process and writes the same tokens as bedtools
// getfasta -s. Rows it cannot resolve are skipped with a warning, as bedtools
// does.
type FastaEngine struct{}

func (FastaEngine) extract(ctx context.Context, reference, bedpath string, w io.Writer) error {
	regions, e := ReadInterchangePath(bedpath)
	if e != nil {
		return e
	}

	ref, e := openRef(reference)
	if e != nil {
		return e
	}
	defer ref.Close()

	bw := bufio.NewWriter(w)
	for _, r := range regions {
		if e := ctx.Err(); e != nil {
			return e
		}
		seq, ok, e := ref.Range(r.Chr, r.Start, r.End)
		if e != nil {
			return e
		}
		if !ok {
			log.Printf("fasta engine: skipping %v:%v-%v, not found in %v", r.Chr, r.Start, r.End, reference)
			continue
		}
		if r.Strand == Minus {
			seq = RevComp(seq)
		}
		if _, e := fmt.Fprintf(bw, "%v\n%s\n", EngineHeader(r.Bed6), seq); e != nil {
			return e
		}
	}
	return bw.Flush()
}

func (f FastaEngine) Extract(ctx context.Context, reference, bedpath string, w io.Writer) error {
	if e := f.extract(ctx, reference, bedpath, w); e != nil {
		return &ExternalToolError{Cmd: "fasta engine " + reference, Err: e}
	}
	return nil
}

func ReadInterchangePath(path string) ([]Region, error) {
	fp, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer fp.Close()

	ivs, e := iter.Collect[Interval](ParseBed(fp))
	if e != nil {
		return nil, withPath(e, path)
	}
	regions, e := CanonicalizeAll(ivs)
	return regions, withPath(e, path)
}
