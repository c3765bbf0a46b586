package pullfasta

import (
	"bufio"
	"io"
	"os"

	"github.com/jgbaldwinbrown/csvh"
)

type Reader struct {
	fp *os.File
	*bufio.Reader
}

func (r *Reader) Close() error {
	if r.fp == os.Stdin {
		return nil
	}
	return r.fp.Close()
}

// Open opens a region table, or stdin for "-". Region tables are read as
// plain text.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return &Reader{os.Stdin, bufio.NewReader(os.Stdin)}, nil
	}
	fp, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	return &Reader{fp, bufio.NewReader(fp)}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// Create opens the FASTA output, or stdout for "-". Paths ending in .gz are
// gzip compressed.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return csvh.CreateMaybeGz(path)
}
