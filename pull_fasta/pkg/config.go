package pullfasta

import (
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

type Mode string

const (
	ModeGff  Mode = "gff"
	ModeBed  Mode = "bed"
	ModePeak Mode = "peak"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeGff, ModeBed, ModePeak:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q, want gff, bed or peak", s)
}

// Config is everything one run needs.
type Config struct {
	Mode       Mode   `toml:"mode"`
	Reference  string `toml:"reference"`
	Upstream   int64  `toml:"upstream"`
	Downstream int64  `toml:"downstream"`
	Input      string `toml:"input"`
	Output     string `toml:"output"`

	Engine       string `toml:"engine"`
	Bedtools     string `toml:"bedtools"`
	TempDir      string `toml:"tmp"`
	KeepTemp     bool   `toml:"keep_tmp"`
	CheckHeaders bool   `toml:"check_headers"`
	Summary      string `toml:"summary"`
	Verbose      bool   `toml:"verbose"`
}

func DefaultConfig() Config {
	return Config{
		Engine:   EngineBedtools,
		Bedtools: "bedtools",
	}
}

func (c Config) Validate() error {
	if _, e := ParseMode(string(c.Mode)); e != nil {
		return e
	}
	if c.Reference == "" {
		return fmt.Errorf("missing reference")
	}
	if c.Input == "" || c.Output == "" {
		return fmt.Errorf("missing input or output path")
	}
	if c.Upstream < 0 || c.Downstream < 0 {
		return &FormatError{Msg: fmt.Sprintf("negative window extent (upstream %v, downstream %v)", c.Upstream, c.Downstream)}
	}
	switch c.Engine {
	case "", EngineBedtools, EngineFasta:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	return nil
}

func LoadConfig(path string, c *Config) error {
	if _, e := toml.DecodeFile(path, c); e != nil {
		return fmt.Errorf("LoadConfig: %w", e)
	}
	return nil
}

func resolveMode(mode string, gff, bed, peak bool) (Mode, error) {
	var picked []Mode
	if gff {
		picked = append(picked, ModeGff)
	}
	if bed {
		picked = append(picked, ModeBed)
	}
	if peak {
		picked = append(picked, ModePeak)
	}
	if len(picked) > 1 {
		return "", fmt.Errorf("-gff, -bed and -peak are mutually exclusive")
	}

	if mode == "" {
		if len(picked) == 1 {
			return picked[0], nil
		}
		return "", nil
	}
	m, e := ParseMode(mode)
	if e != nil {
		return "", e
	}
	if len(picked) == 1 && picked[0] != m {
		return "", fmt.Errorf("-mode %v conflicts with -%v", m, picked[0])
	}
	return m, nil
}

// GetFlags parses a command line. A -config file is applied first and any
// flag given on the command line overrides it.
func GetFlags(args []string, stderr io.Writer) (Config, error) {
	c := DefaultConfig()
	var cfgpath, mode string
	var gff, bed, peak bool

	fs := flag.NewFlagSet("pull_fasta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: pull_fasta -mode {gff|bed|peak} -reference ref.fa [options] regions output.fa\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfgpath, "config", "", "TOML file with default settings")
	fs.StringVar(&mode, "mode", "", "input format: gff, bed or peak")
	fs.BoolVar(&gff, "gff", false, "indicate the input file is GFF")
	fs.BoolVar(&bed, "bed", false, "indicate the input file is BED")
	fs.BoolVar(&peak, "peak", false, "indicate the input file is PEAK")
	fs.StringVar(&c.Reference, "reference", "", "reference fasta file")
	fs.StringVar(&c.Reference, "ref", "", "alias for -reference")
	fs.Int64Var(&c.Upstream, "upstream", 0, "number of nucleotides upstream (peak input)")
	fs.Int64Var(&c.Upstream, "nu", 0, "alias for -upstream")
	fs.Int64Var(&c.Downstream, "downstream", 0, "number of nucleotides downstream (peak input)")
	fs.Int64Var(&c.Downstream, "nd", 0, "alias for -downstream")
	fs.StringVar(&c.Engine, "engine", EngineBedtools, "extraction engine: bedtools or fasta (in process)")
	fs.StringVar(&c.Bedtools, "bedtools", "bedtools", "bedtools executable")
	fs.StringVar(&c.TempDir, "tmp", "", "directory for the temporary BED file (default system temp)")
	fs.BoolVar(&c.KeepTemp, "keep-tmp", false, "keep the temporary BED file")
	fs.BoolVar(&c.CheckHeaders, "check-headers", false, "require each engine header to match its region")
	fs.StringVar(&c.Summary, "summary", "", "write a JSON summary of region lengths to this path")
	fs.BoolVar(&c.Verbose, "v", false, "verbose logging")

	if e := fs.Parse(args); e != nil {
		return c, e
	}
	if cfgpath != "" {
		if e := LoadConfig(cfgpath, &c); e != nil {
			return c, e
		}
		if e := fs.Parse(args); e != nil {
			return c, e
		}
	}

	m, e := resolveMode(mode, gff, bed, peak)
	if e != nil {
		return c, e
	}
	if m != "" {
		c.Mode = m
	}

	switch pos := fs.Args(); len(pos) {
	case 0:
	case 2:
		c.Input, c.Output = pos[0], pos[1]
	default:
		fs.Usage()
		return c, fmt.Errorf("want 2 positional arguments (regions, output), got %v", len(pos))
	}

	return c, c.Validate()
}
