package ran_dna_gen

import (
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"gene_analyzer_go/seqerr"
)

var senseCodons = buildSenseCodons()

func buildSenseCodons() []string {
	bases := "ACGT"
	var codons []string
	for _, a := range bases {
		for _, b := range bases {
			for _, c := range bases {
				codon := string([]rune{a, b, c})
				switch codon {
				case "TAA", "TAG", "TGA":
					continue
				}
				codons = append(codons, codon)
			}
		}
	}
	return codons
}

var stops = []string{"TAA", "TAG", "TGA"}

// Generator produces reproducible random DNA for a given seed.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator. A zero seed is replaced by the current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Sequence returns a random DNA sequence of the given length and GC bias (0.0-1.0).
func (g *Generator) Sequence(length int, gcBias float64) (string, error) {
	if length < 0 {
		return "", seqerr.Invalid("length", length, "must not be negative")
	}
	if gcBias < 0.0 || gcBias > 1.0 {
		return "", seqerr.Invalid("gc_bias", gcBias, "must be between 0.0 and 1.0")
	}

	cWeight := gcBias / 2
	aWeight := (1 - gcBias) / 2
	tWeight := (1 - gcBias) / 2

	seq := make([]byte, length)
	for i := range seq {
		r := g.rng.Float64()
		switch {
		case r < aWeight:
			seq[i] = 'A'
		case r < aWeight+tWeight:
			seq[i] = 'T'
		case r < aWeight+tWeight+cWeight:
			seq[i] = 'C'
		default:
			seq[i] = 'G'
		}
	}
	return string(seq), nil
}

// ORF returns a complete open reading frame of the given number of codons:
// ATG, random sense codons, then a stop. Fewer than 2 codons yields ATG+stop.
func (g *Generator) ORF(codons int) string {
	if codons < 2 {
		codons = 2
	}
	var sb strings.Builder
	sb.Grow(codons * 3)
	sb.WriteString("ATG")
	for i := 0; i < codons-2; i++ {
		sb.WriteString(senseCodons[g.rng.Intn(len(senseCodons))])
	}
	sb.WriteString(stops[g.rng.Intn(len(stops))])
	return sb.String()
}

// Plant inserts orf into seq at offset, clamped to the sequence bounds.
func Plant(seq, orf string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(seq) {
		offset = len(seq)
	}
	return seq[:offset] + orf + seq[offset:]
}

// WrapFasta wraps seq every width characters. Width <= 0 writes one line.
func WrapFasta(seq string, width int) string {
	if width <= 0 || len(seq) <= width {
		return seq + "\n"
	}
	var sb strings.Builder
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		sb.WriteString(seq[i:end])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Record formats one FASTA record.
func Record(name, seq string, width int) string {
	return ">" + name + "\n" + WrapFasta(seq, width)
}

// Run is the ran_dna_gen tool. It writes one or more random records,
// optionally with a planted ORF so the analyzer has something to find.
func Run(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("ran_dna_gen", flag.ExitOnError)

	length := fs.Int("length", 100, "Length of generated DNA sequence")
	gc := fs.Float64("gc_bias", 0.5, "GC bias (0.0-1.0)")
	seed := fs.Int64("seed", 0, "Seed for RNG (0 = time based)")
	outFile := fs.String("out_file", "", "Output FASTA file")
	name := fs.String("name", "random_seq", "Sequence name (FASTA header)")
	count := fs.Int("count", 1, "Number of records to generate")
	plantORF := fs.Int("plant_orf", 0, "Insert an ORF of this many codons into each record (0 = none)")
	gzipOption := fs.Bool("gzip", false, "Compress output using gzip (.gz)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unrecognized arguments: %v (use -h to view valid flags)", fs.Args())
	}
	if *count < 1 {
		return seqerr.Invalid("count", *count, "must be at least 1")
	}

	gen := New(*seed)
	var sb strings.Builder
	for i := 0; i < *count; i++ {
		seq, err := gen.Sequence(*length, *gc)
		if err != nil {
			return err
		}
		if *plantORF > 0 {
			seq = Plant(seq, gen.ORF(*plantORF), gen.rng.Intn(len(seq)+1))
		}
		id := *name
		if *count > 1 {
			id = fmt.Sprintf("%s_%d", *name, i+1)
		}
		sb.WriteString(Record(id, seq, 60))
	}

	if *outFile == "" {
		if *gzipOption {
			return fmt.Errorf("cannot gzip to stdout directly, please specify an output file")
		}
		_, err := io.WriteString(os.Stdout, sb.String())
		return err
	}

	path, err := WriteFile(*outFile, sb.String(), *gzipOption)
	if err != nil {
		return err
	}
	logger.Info("wrote random sequences", "file", path, "records", *count, "length", *length)
	return nil
}

// WriteFile writes text to path, gzip-compressed with a ".gz" suffix added
// when compress is set, and returns the path written. Close errors are
// returned since the gzip trailer is only written on Close.
func WriteFile(path, text string, compress bool) (string, error) {
	if compress {
		path += ".gz"
	}
	file, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("error creating output file: %w", err)
	}

	var w io.Writer = file
	var gw *gzip.Writer
	if compress {
		gw = gzip.NewWriter(file)
		w = gw
	}
	_, err = io.WriteString(w, text)
	if gw != nil {
		if cerr := gw.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return path, fmt.Errorf("error writing sequence: %w", err)
	}
	return path, nil
}
