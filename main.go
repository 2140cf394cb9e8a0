package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"gene_analyzer_go/benchmark"
	"gene_analyzer_go/codon_usage"
	"gene_analyzer_go/config"
	"gene_analyzer_go/fasta_overview"
	"gene_analyzer_go/logging"
	"gene_analyzer_go/orf_finder"
	"gene_analyzer_go/ran_dna_gen"
	"gene_analyzer_go/sanity_check"
	"gene_analyzer_go/sequence_report"
)

// printCustomHelp formats a custom help menu
func printCustomHelp() {
	fmt.Println(`Gene Analyzer - Custom Help Menu
Usage:
  gene_analyzer <tool> [options]

Tools:
  analyze		Sequence statistics, ORFs and codon usage for every record
  orf_finder		Find open reading frames (GFF3 output)
  codon_usage		Codon frequency table
  fasta_overview	Format check and summary statistics of a FASTA file
  ran_dna_gen		Generate random DNA sequence
  check			Run diagnostic test

Global Flags:
  -h, -help		Show this help message
  -v, -version		Show version information
  -verbose		Debug logging

Benchmarking:
  -benchmark		Must be used in association with a tool.
			Displays computational resource usage and
			pertinent operating system information`)
	os.Exit(0)
}

func printVersion() {
	fmt.Println("Gene Analyzer - Version Information Menu")
	fmt.Println("Central Executable:")
	fmt.Printf("\tGene Analyzer:\t\t%s\n", config.Main_version)
	fmt.Printf("\nModular tools:\n")
	fmt.Printf("\tAnalyze:\t\t%s\n", config.Analyze)
	fmt.Printf("\tORF Finder:\t\t%s\n", config.ORF_Finder)
	fmt.Printf("\tCodon Usage:\t\t%s\n", config.Codon_Usage)
	fmt.Printf("\tFASTA Overview:\t\t%s\n", config.FASTA_Overview)
	fmt.Printf("\tRandom DNA Generator:\t%s\n", config.Seq_Generator)
	fmt.Printf("\tSanity Check:\t\t%s\n", config.Sanity_check)
	fmt.Printf("\tBenchmark:\t\t%s\n", config.Benchmark)
	fmt.Println("")
	os.Exit(0)
}

// Main controller
func main() {
	if len(os.Args) < 2 {
		printCustomHelp()
	}

	// Executable-level help only when no tool is named
	if len(os.Args) == 2 && (os.Args[1] == "-h" || os.Args[1] == "-help") {
		printCustomHelp()
	}
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "-version" {
			printVersion()
		}
	}

	toolName := os.Args[1]
	toolArgs := os.Args[2:]

	// Global flags are stripped before the tool sees its arguments
	benchmarking, verbose := false, false
	var cleanedArgs []string
	for _, arg := range toolArgs {
		switch arg {
		case "-benchmark":
			benchmarking = true
		case "-verbose":
			verbose = true
		default:
			cleanedArgs = append(cleanedArgs, arg)
		}
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(os.Stderr, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	tools := map[string]func([]string, *log.Logger) error{
		"analyze":        sequence_report.Run,
		"orf_finder":     orf_finder.Run,
		"codon_usage":    codon_usage.Run,
		"fasta_overview": fasta_overview.Run,
		"ran_dna_gen":    ran_dna_gen.Run,
		"check": func(args []string, l *log.Logger) error {
			return sanity_check.Run(args, os.Stdout, l)
		},
	}
	tool, ok := tools[toolName]
	if !ok {
		logger.Error("unknown tool", "tool", toolName)
		fmt.Fprintln(os.Stderr, "Use -h to list the available tools.")
		os.Exit(1)
	}

	run := func() error { return tool(cleanedArgs, logger) }

	if benchmarking {
		label := fmt.Sprintf("gene_analyzer %s %s", toolName, strings.Join(cleanedArgs, " "))
		err = benchmark.Run(label, logger, run)
	} else {
		err = run()
	}
	if err != nil {
		logger.Error("tool failed", "tool", toolName, "err", err)
		os.Exit(1)
	}
}
