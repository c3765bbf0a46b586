package pullfasta

import (
	"io"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fasttsv"
	"github.com/jgbaldwinbrown/iter"
	"github.com/jgbaldwinbrown/lscan/pkg"
)

var attrSplit = lscan.ByByte(';')

// ParseGffAttributes reads a column 9 string of key=value pairs. When the
// first pair has no '=', the column is treated as unstructured and no
// attributes are returned.
func ParseGffAttributes(field string) map[string]string {
	attrs := map[string]string{}
	if field == "" || field == "." {
		return attrs
	}

	tokens := lscan.SplitByFunc(nil, field, attrSplit)
	if len(tokens) < 1 || !strings.Contains(tokens[0], "=") {
		return attrs
	}

	for _, tok := range tokens {
		k, v, found := strings.Cut(tok, "=")
		if !found {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		attrs[k] = strings.TrimSpace(v)
	}
	return attrs
}

func GffName(attrs map[string]string) string {
	if id, ok := attrs["ID"]; ok {
		return id
	}
	if name, ok := attrs["Name"]; ok {
		return name
	}
	return "."
}

func parseGffStrand(s string) (Strand, error) {
	if s == "?" {
		return NoStrand, nil
	}
	return ParseStrand(s)
}

// ParseGffLine turns one GFF row into an Interval. GFF coordinates are
// 1-based closed, so start is shifted down by one and end is kept.
func ParseGffLine(fields []string, line int) (Interval, error) {
	var iv Interval
	iv.Line = line
	if len(fields) < 2 {
		return iv, formatErrorf(line, nil, "gff row has %v fields, need at least 2", len(fields))
	}
	iv.Chr = fields[0]

	if len(fields) > 3 {
		var start int64
		if _, e := csvh.Scan(fields[3:4], &start); e != nil {
			return iv, formatErrorf(line, e, "bad gff start %q", fields[3])
		}
		iv.Start = Some(start - 1)
	}
	if len(fields) > 4 {
		var end int64
		if _, e := csvh.Scan(fields[4:5], &end); e != nil {
			return iv, formatErrorf(line, e, "bad gff end %q", fields[4])
		}
		iv.End = Some(end)
	}
	if len(fields) > 5 && fields[5] != "." {
		score, e := strconv.ParseFloat(fields[5], 64)
		if e != nil {
			return iv, formatErrorf(line, e, "bad gff score %q", fields[5])
		}
		iv.Score = Some(score)
	}
	if len(fields) > 6 {
		strand, e := parseGffStrand(fields[6])
		if e != nil {
			return iv, formatErrorf(line, e, "bad gff strand")
		}
		iv.Strand = Some(strand)
	}

	attrfield := ""
	if len(fields) > 8 {
		attrfield = fields[8]
	}
	iv.Attributes = ParseGffAttributes(attrfield)
	iv.Name = Some(GffName(iv.Attributes))

	return iv, nil
}

func isBlank(fields []string) bool {
	return len(fields) == 0 || (len(fields) == 1 && strings.TrimSpace(fields[0]) == "")
}

// ParseGff reads GFF rows up to the end of input or a ##FASTA directive.
// Columns are split on tabs only; quotes have no meaning in GFF.
func ParseGff(r io.Reader) *iter.Iterator[Interval] {
	return &iter.Iterator[Interval]{Iteratef: func(yield func(Interval) error) error {
		s := fasttsv.NewScanner(r)
		lnum := 0
		for s.Scan() {
			lnum++
			l := trimCR(s.Line())
			if isBlank(l) {
				continue
			}
			if strings.HasPrefix(l[0], "#") {
				if strings.HasPrefix(l[0], "##FASTA") {
					return nil
				}
				continue
			}

			iv, e := ParseGffLine(l, lnum)
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
