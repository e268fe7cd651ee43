package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tariffpatch [update] <new_rate> [flags]")
	fmt.Fprintln(w, "       tariffpatch <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  update     Supersede the tariff rate and dependent taxes (default)")
	fmt.Fprintln(w, "  show       Report the rate, taxes and notes currently in the post")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tariffpatch help <command>' for details on a specific command.")
}

// printUpdateUsage prints usage for the update command.
func printUpdateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tariffpatch [update] <new_rate> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Strike through the active rate and append the new one, recompute each")
	fmt.Fprintln(w, "product's tax, and add a timestamped update note.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  new_rate    New tariff rate in percent (0-10000, e.g. 10 or 10%)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Post:")
	fmt.Fprintln(w, "  -f, --file <path>         Post to edit (default: post.html)")
	fmt.Fprintln(w, "      --no-backup           Skip the <file>.bak copy")
	fmt.Fprintln(w, "      --dry-run             Print a diff, write nothing")
	fmt.Fprintln(w, "      --rate-scope <s>      Occurrences to supersede: all (default), chain")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Note:")
	fmt.Fprintln(w, "  -n, --note <s>            Text appended to the update note (inline Markdown/HTML)")
	fmt.Fprintln(w, "      --raw-note            Insert note text verbatim")
	fmt.Fprintln(w, "      --timestamp <s>       Format: tokens or preset (default, zone, iso, long)")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, hh, mm, ss, ZZZ")
	fmt.Fprintln(w, "                            Use [text] to escape literals: YYYY-MM-DD HH:mm [PDT]")
	fmt.Fprintln(w, "      --timezone <s>        IANA timezone (default: local)")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TARIFFPATCH_CONFIG, TARIFFPATCH_FILE, TARIFFPATCH_NOTE,")
	fmt.Fprintln(w, "  TARIFFPATCH_RATE_SCOPE, TARIFFPATCH_NO_BACKUP (also read from .env)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  tariffpatch 10")
	fmt.Fprintln(w, "  tariffpatch 30 --note \"a 90-day pause\" --file blog/tariffs.html")
	fmt.Fprintln(w, "  tariffpatch update 10 --dry-run")
}

// printShowUsage prints usage for the show command.
func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tariffpatch show [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report the active rate, its history, each product's tax and the update")
	fmt.Fprintln(w, "notes found in the post. Nothing is written.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -f, --file <path>         Post to read (default: post.html)")
	fmt.Fprintln(w, "      --yaml                Print the report as YAML")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printCommonFlags prints the flags shared by all commands.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printHelp prints help for the named command, or the main usage.
func printHelp(w io.Writer, command string) error {
	switch command {
	case "":
		printUsage(w)
	case "update":
		printUpdateUsage(w)
	case "show":
		printShowUsage(w)
	case "version", "help":
		printUsage(w)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
	return nil
}
