package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"dicom-deident/internal/anonymizer"
	"dicom-deident/internal/config"
	dcm "dicom-deident/internal/dicom"
	"dicom-deident/internal/progress"
)

// Engine is an anonymizer together with its skip log.
type Engine struct {
	Anonymizer *anonymizer.Anonymizer
	Skips      *progress.ErrorLogger
	Log        zerolog.Logger
}

// NewEngine builds the anonymizer described by cfg.
func NewEngine(cfg *config.Config, log zerolog.Logger) (*Engine, error) {
	skips, err := progress.NewErrorLogger(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("could not create skip log: %w", err)
	}

	a, err := anonymizer.New(anonymizer.Config{
		Workers:     cfg.Workers,
		Extension:   cfg.Extension,
		StationName: cfg.StationName,
		Logger:      &log,
		Skips:       skips,
	})
	if err != nil {
		skips.Close()
		return nil, err
	}

	return &Engine{Anonymizer: a, Skips: skips, Log: log}, nil
}

// Close flushes the skip log.
func (e *Engine) Close() error {
	return e.Skips.Close()
}

// BatchOptions holds batch run options
type BatchOptions struct {
	Inputs      []string
	Destination string
	Recursive   bool
	Out         io.Writer
}

// RunBatch expands the inputs into DICOM files and anonymizes them into the
// destination tree. It returns the number of anonymized files.
func RunBatch(e *Engine, opts BatchOptions) (int, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.Destination == "" {
		return 0, fmt.Errorf("destination directory is required")
	}
	if len(opts.Inputs) == 0 {
		return 0, fmt.Errorf("at least one input path is required")
	}

	files, err := dcm.ExpandInputs(opts.Inputs, opts.Recursive, opts.Destination)
	if err != nil {
		return 0, fmt.Errorf("could not find DICOM files: %w", err)
	}

	printHeader(out, e, opts, len(files))
	if len(files) == 0 {
		fmt.Fprintln(out, "No DICOM files found")
		return 0, nil
	}

	pb := newProgressBar(out, 50)
	n := e.Anonymizer.AnonymizeBatchWithProgress(files, opts.Destination,
		func(current, total int, _ string, _ string) {
			pb.update(current, total)
		})
	fmt.Fprintln(out)

	printSummary(out, n, len(files), opts.Destination)
	return n, nil
}

// RunFile anonymizes a single file. With naming set, output is the
// destination base directory.
func RunFile(e *Engine, input, output string, naming bool, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	ok, err := e.Anonymizer.AnonymizeFile(input, output, naming)
	if !ok {
		return fmt.Errorf("%s not anonymized: %w", input, err)
	}

	fmt.Fprintf(out, "%s anonymized.\n", input)
	return nil
}

// printHeader prints the CLI header with configuration
func printHeader(out io.Writer, e *Engine, opts BatchOptions, files int) {
	fmt.Fprintln(out, "DICOM De-identification")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Inputs:    %s\n", strings.Join(opts.Inputs, ", "))
	fmt.Fprintf(out, "Output:    %s\n", opts.Destination)
	fmt.Fprintf(out, "Station:   %s\n", e.Anonymizer.StationName())
	fmt.Fprintf(out, "Files:     %d\n", files)
	if opts.Recursive {
		fmt.Fprintln(out, "Options:   Recursive")
	}
	fmt.Fprintln(out)
}

// RunSummary describes the outcome of one batch from its own counts.
func RunSummary(success, total int, destination string) string {
	if failed := total - success; failed > 0 {
		return fmt.Sprintf("%d files anonymized into %s, %d skipped", success, destination, failed)
	}
	return fmt.Sprintf("%d files anonymized into %s", success, destination)
}

// printSummary prints the processing summary
func printSummary(out io.Writer, success, total int, destination string) {
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "%d files anonymized.\n", success)
	fmt.Fprintln(out, RunSummary(success, total, destination))
}

// progressBar represents a terminal progress bar
type progressBar struct {
	out   io.Writer
	width int
}

// newProgressBar creates a new progress bar with specified width
func newProgressBar(out io.Writer, width int) *progressBar {
	return &progressBar{out: out, width: width}
}

// update updates the progress bar display
func (pb *progressBar) update(current, total int) {
	if total == 0 {
		return
	}

	percent := float64(current) / float64(total)
	filled := int(percent * float64(pb.width))
	if filled > pb.width {
		filled = pb.width
	}

	bar := strings.Repeat("#", filled) + strings.Repeat("-", pb.width-filled)
	fmt.Fprintf(pb.out, "\r[%s] %3.0f%%  (%d/%d)", bar, percent*100, current, total)
}
