package pullfasta

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const runGff = "##gff-version 3\n" +
	"chr1\tsrc\tgene\t3\t6\t.\t+\t.\tID=g1\n" +
	"chr1\tsrc\tgene\t9\t12\t.\t-\t.\tName=g2;Note=x\n"

const runGffExpect = ">g1 chr1:3-6(+)\nGTAC\n" +
	">g2 chr1:9-12(-)\nCCGT\n"

func testConfig(t *testing.T, dir string, mode Mode, input string) Config {
	tmp := filepath.Join(dir, "tmp")
	if e := os.MkdirAll(tmp, 0755); e != nil {
		panic(e)
	}
	c := DefaultConfig()
	c.Mode = mode
	c.Reference = writeRef(t, dir, false)
	c.Input = writeFile(t, dir, "regions.in", input)
	c.Output = filepath.Join(dir, "out.fa")
	c.Engine = EngineFasta
	c.TempDir = tmp
	c.CheckHeaders = true
	return c
}

func tmpEntries(t *testing.T, c Config) int {
	ents, e := os.ReadDir(c.TempDir)
	if e != nil {
		panic(e)
	}
	return len(ents)
}

func TestRunGff(t *testing.T) {
	c := testConfig(t, t.TempDir(), ModeGff, runGff)
	if e := Run(context.Background(), c); e != nil {
		panic(e)
	}
	if out := readFile(t, c.Output); out != runGffExpect {
		t.Errorf("out %q != expect %q", out, runGffExpect)
	}
	if n := tmpEntries(t, c); n != 0 {
		t.Errorf("%v temporary entries left behind", n)
	}
}

func TestRunPeak(t *testing.T) {
	in := "Chromosome,Strand,ModeLocation,GeneName\n" +
		"chr1,+,10,AT1\n" +
		"chr1,-,10,AT1\n"
	c := testConfig(t, t.TempDir(), ModePeak, in)
	c.Upstream = 2
	c.Downstream = 4
	if e := Run(context.Background(), c); e != nil {
		panic(e)
	}

	expect := ">AT1 chr1:8-14(+)\nTACGGTT\n" +
		">AT1 chr1:6-12(-)\nCCGTACG\n"
	if out := readFile(t, c.Output); out != expect {
		t.Errorf("out %q != expect %q", out, expect)
	}
}

func TestRunGzipAndSummary(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(t, dir, ModeGff, runGff)
	c.Output = filepath.Join(dir, "out.fa.gz")
	c.Summary = filepath.Join(dir, "summary.json")
	c.KeepTemp = true
	if e := Run(context.Background(), c); e != nil {
		panic(e)
	}

	fp, e := os.Open(c.Output)
	if e != nil {
		panic(e)
	}
	defer fp.Close()
	gr, e := gzip.NewReader(fp)
	if e != nil {
		panic(e)
	}
	b, e := io.ReadAll(gr)
	if e != nil {
		panic(e)
	}
	if string(b) != runGffExpect {
		t.Errorf("out %q != expect %q", b, runGffExpect)
	}

	var s Summary
	if e := json.Unmarshal([]byte(readFile(t, c.Summary)), &s); e != nil {
		panic(e)
	}
	expect := Summary{Mode: ModeGff, Regions: 2, Bases: 8, MeanLength: 4, MedianLength: 4, MinLength: 4, MaxLength: 4}
	if s != expect {
		t.Errorf("summary %v != expect %v", s, expect)
	}

	if n := tmpEntries(t, c); n != 1 {
		t.Errorf("%v temporary entries, expected the kept one", n)
	}
}

func TestRunMissingSequence(t *testing.T) {
	in := "chr1\t2\t6\ta\t0\t+\n" +
		"chr1\t10\t40\tb\t0\t+\n"
	c := testConfig(t, t.TempDir(), ModeBed, in)
	e := Run(context.Background(), c)

	var ce *CorrelationError
	if !errors.As(e, &ce) {
		t.Errorf("expected CorrelationError, got %v", e)
	}
	if _, e := os.Stat(c.Output); !os.IsNotExist(e) {
		t.Errorf("output written after failure: %v", e)
	}
	if n := tmpEntries(t, c); n != 0 {
		t.Errorf("%v temporary entries left behind", n)
	}
}

func TestRunFormatError(t *testing.T) {
	c := testConfig(t, t.TempDir(), ModeBed, "chr1\t2\t6\nchr1\t5\n")
	e := Run(context.Background(), c)

	var fe *FormatError
	if !errors.As(e, &fe) {
		t.Fatalf("expected FormatError, got %v", e)
	}
	if fe.Path != c.Input || fe.Line != 2 {
		t.Errorf("error at %v line %v, expected %v line 2", fe.Path, fe.Line, c.Input)
	}
	if _, e := os.Stat(c.Output); !os.IsNotExist(e) {
		t.Errorf("output written after failure: %v", e)
	}
}

func TestRunEmpty(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(t, dir, ModeBed, "")
	c.Engine = EngineBedtools
	c.Bedtools = filepath.Join(dir, "no-such-bedtools")
	if e := Run(context.Background(), c); e != nil {
		panic(e)
	}
	if out := readFile(t, c.Output); out != "" {
		t.Errorf("out %q != \"\"", out)
	}
}

func TestRunEngineError(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(t, dir, ModeGff, runGff)
	c.Engine = EngineBedtools
	c.Bedtools = filepath.Join(dir, "no-such-bedtools")
	e := Run(context.Background(), c)

	var te *ExternalToolError
	if !errors.As(e, &te) {
		t.Errorf("expected ExternalToolError, got %v", e)
	}
	if _, e := os.Stat(c.Output); !os.IsNotExist(e) {
		t.Errorf("output written after failure: %v", e)
	}
}

func TestRunSummaryFailure(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(t, dir, ModeGff, runGff)
	c.Summary = filepath.Join(dir, "no", "such", "dir", "summary.json")
	if e := Run(context.Background(), c); e == nil {
		t.Fatalf("summary into a missing directory accepted")
	}
	if _, e := os.Stat(c.Output); !os.IsNotExist(e) {
		t.Errorf("output left behind after summary failure: %v", e)
	}
}
