package pullfasta

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const extractBed = "chr1\t2\t6\ta\t0\t+\n" +
	"chr3\t0\t4\tmissing\t0\t+\n" +
	"chr1\t8\t12\tb\t0\t-\n" +
	"chr2\t5\t20\ttoolong\t0\t+\n" +
	"chr2\t0\t4\tc\t0\t.\n"

const extractExpect = ">chr1:2-6(+)\nGTAC\n" +
	">chr1:8-12(-)\nCCGT\n" +
	">chr2:0-4(.)\nTTTT\n"

func TestRevComp(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"ACGG", "CCGT"},
		{"AACGTT", "AACGTT"},
		{"CGTACGG", "CCGTACG"},
		{"", ""},
	}
	for _, test := range tests {
		if out := string(RevComp([]byte(test.in))); out != test.out {
			t.Errorf("RevComp(%v) %v != %v", test.in, out, test.out)
		}
	}
}

func testFastaEngine(t *testing.T, index bool) {
	dir := t.TempDir()
	ref := writeRef(t, dir, index)
	bed := writeFile(t, dir, "regions.bed", extractBed)

	var out strings.Builder
	if e := (FastaEngine{}).Extract(context.Background(), ref, bed, &out); e != nil {
		panic(e)
	}
	if out.String() != extractExpect {
		t.Errorf("out %q != expect %q", out.String(), extractExpect)
	}
}

func TestFastaEngineMem(t *testing.T) {
	testFastaEngine(t, false)
}

func TestFastaEngineFai(t *testing.T) {
	testFastaEngine(t, true)
}

func TestFastaEngineMultiline(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.fa", ">chr1 first chromosome\nACGTACGTAC\nGGTTAACC\n>chr2\nTTTT\nGGGG\n")
	bed := writeFile(t, dir, "regions.bed", extractBed)

	var out strings.Builder
	if e := (FastaEngine{}).Extract(context.Background(), ref, bed, &out); e != nil {
		panic(e)
	}
	if out.String() != extractExpect {
		t.Errorf("out %q != expect %q", out.String(), extractExpect)
	}
}

func TestFastaEngineMissingReference(t *testing.T) {
	dir := t.TempDir()
	bed := writeFile(t, dir, "regions.bed", extractBed)

	var out strings.Builder
	e := (FastaEngine{}).Extract(context.Background(), filepath.Join(dir, "nope.fa"), bed, &out)
	var te *ExternalToolError
	if !errors.As(e, &te) {
		t.Errorf("expected ExternalToolError, got %v", e)
	}
}

func TestBedtoolsMissing(t *testing.T) {
	dir := t.TempDir()
	ref := writeRef(t, dir, false)
	bed := writeFile(t, dir, "regions.bed", extractBed)

	var out strings.Builder
	b := Bedtools{Path: filepath.Join(dir, "no-such-bedtools")}
	e := b.Extract(context.Background(), ref, bed, &out)
	var te *ExternalToolError
	if !errors.As(e, &te) {
		t.Errorf("expected ExternalToolError, got %v", e)
	}
}

func TestBedtoolsFailure(t *testing.T) {
	bin, e := exec.LookPath("false")
	if e != nil {
		t.Skip("no false executable")
	}
	dir := t.TempDir()
	ref := writeRef(t, dir, false)
	bed := writeFile(t, dir, "regions.bed", extractBed)

	var out strings.Builder
	e = Bedtools{Path: bin}.Extract(context.Background(), ref, bed, &out)
	var te *ExternalToolError
	if !errors.As(e, &te) {
		t.Errorf("expected ExternalToolError, got %v", e)
	}
}

func TestBedtools(t *testing.T) {
	bin, e := exec.LookPath("bedtools")
	if e != nil {
		t.Skip("bedtools not installed")
	}
	dir := t.TempDir()
	ref := writeRef(t, dir, false)
	bed := writeFile(t, dir, "regions.bed", "chr1\t2\t6\ta\t0\t+\nchr1\t8\t12\tb\t0\t-\n")

	var out strings.Builder
	if e := (Bedtools{Path: bin}).Extract(context.Background(), ref, bed, &out); e != nil {
		panic(e)
	}
	toks, e := Tokens(strings.NewReader(out.String()))
	if e != nil {
		panic(e)
	}
	expect := []string{">chr1:2-6(+)", "GTAC", ">chr1:8-12(-)", "CCGT"}
	if strings.Join(toks, " ") != strings.Join(expect, " ") {
		t.Errorf("out %v != expect %v", toks, expect)
	}
}

func TestNewExtractor(t *testing.T) {
	c := DefaultConfig()
	if ex, e := NewExtractor(c); e != nil {
		panic(e)
	} else if _, ok := ex.(Bedtools); !ok {
		t.Errorf("default engine %T", ex)
	}
	c.Engine = EngineFasta
	if ex, e := NewExtractor(c); e != nil {
		panic(e)
	} else if _, ok := ex.(FastaEngine); !ok {
		t.Errorf("fasta engine %T", ex)
	}
	c.Engine = "samtools"
	if _, e := NewExtractor(c); e == nil {
		t.Errorf("unknown engine accepted")
	}
}
