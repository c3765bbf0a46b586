package pullfasta

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jgbaldwinbrown/fastats/pkg"
)

// chr1 positions: 0 A, 1 C, 2 G, 3 T, 4 A, 5 C, 6 G, 7 T, 8 A, 9 C,
// 10 G, 11 G, 12 T, 13 T, 14 A, 15 A, 16 C, 17 C
var testRef = []fastats.FaEntry{
	fastats.FaEntry{Header: "chr1", Seq: "ACGTACGTACGGTTAACC"},
	fastats.FaEntry{Header: "chr2", Seq: "TTTTGGGG"},
}

// writeRef writes testRef with one line per sequence, and a samtools style
// index next to it when index is true.
func writeRef(t *testing.T, dir string, index bool) string {
	path := filepath.Join(dir, "ref.fa")

	var fa, fai strings.Builder
	for _, f := range testRef {
		fmt.Fprintf(&fa, ">%v\n", f.Header)
		offset := fa.Len()
		fmt.Fprintf(&fa, "%v\n", f.Seq)
		fmt.Fprintf(&fai, "%v\t%v\t%v\t%v\t%v\n", f.Header, len(f.Seq), offset, len(f.Seq), len(f.Seq)+1)
	}

	if e := os.WriteFile(path, []byte(fa.String()), 0644); e != nil {
		panic(e)
	}
	if index {
		if e := os.WriteFile(path+".fai", []byte(fai.String()), 0644); e != nil {
			panic(e)
		}
	}
	return path
}

func writeFile(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	if e := os.WriteFile(path, []byte(contents), 0644); e != nil {
		panic(e)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	b, e := os.ReadFile(path)
	if e != nil {
		panic(e)
	}
	return string(b)
}
