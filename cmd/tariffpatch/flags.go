package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// targetFlags holds the post location.
type targetFlags struct {
	file string
}

// noteFlags holds update-note flags.
type noteFlags struct {
	text      string
	raw       bool
	timestamp string
	timezone  string
}

// updateFlags holds all flags for the update command.
type updateFlags struct {
	common    commonFlags
	target    targetFlags
	note      noteFlags
	noBackup  bool
	dryRun    bool
	rateScope string

	set func(name string) bool // Reports whether a flag was given explicitly
}

// showFlags holds all flags for the show command.
type showFlags struct {
	common commonFlags
	target targetFlags
	yaml   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addTargetFlags adds the post location flag to a FlagSet.
func addTargetFlags(fs *flag.FlagSet, f *targetFlags) {
	fs.StringVarP(&f.file, "file", "f", "", "post to edit (default \"post.html\")")
}

// addNoteFlags adds update-note flags to a FlagSet.
func addNoteFlags(fs *flag.FlagSet, f *noteFlags) {
	fs.StringVarP(&f.text, "note", "n", "", "text appended to the update note")
	fs.BoolVar(&f.raw, "raw-note", false, "insert note text verbatim instead of Markdown")
	fs.StringVar(&f.timestamp, "timestamp", "", "timestamp format or preset")
	fs.StringVar(&f.timezone, "timezone", "", "IANA timezone for the timestamp")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseUpdateFlags parses update command flags and returns positional args.
// flag.ErrHelp is returned unwrapped when -h or --help is given.
func parseUpdateFlags(args []string) (*updateFlags, []string, error) {
	fs := newFlagSet("update")
	f := &updateFlags{}

	addCommonFlags(fs, &f.common)
	addTargetFlags(fs, &f.target)
	addNoteFlags(fs, &f.note)
	fs.BoolVar(&f.noBackup, "no-backup", false, "skip the backup copy")
	fs.BoolVar(&f.dryRun, "dry-run", false, "print a diff instead of writing")
	fs.StringVar(&f.rateScope, "rate-scope", "", "rate occurrences to supersede: all, chain")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	f.set = func(name string) bool { return fs.Changed(name) }
	return f, fs.Args(), nil
}

// parseShowFlags parses show command flags and returns positional args.
func parseShowFlags(args []string) (*showFlags, []string, error) {
	fs := newFlagSet("show")
	f := &showFlags{}

	addCommonFlags(fs, &f.common)
	addTargetFlags(fs, &f.target)
	fs.BoolVar(&f.yaml, "yaml", false, "print the report as YAML")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return f, fs.Args(), nil
}
