// Package completion provides shell tab completion for the command line.
//
// The shell calls the binary back with COMP_LINE set. Register answers those
// calls from the kong model, and Script prints the snippet that tells a shell
// to do so.
package completion

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/mcncl/jsonfizz/internal/errors"
	"github.com/mcncl/jsonfizz/internal/theme"
)

// Shells lists the shells Script can write for.
var Shells = []string{"bash", "zsh", "fish"}

// Register answers a pending completion request and exits. It returns
// normally when the process was not started by a shell completer, so it must
// run before the parser sees the arguments.
//
// Flags tagged with predictor:"file", predictor:"theme" or predictor:"format"
// complete to file names, theme names and output formats.
func Register(parser *kong.Kong) {
	kongplete.Complete(parser,
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
		kongplete.WithPredictor("theme", complete.PredictSet(theme.Names()...)),
		kongplete.WithPredictor("format", complete.PredictSet("json", "yaml", "toml", "csv")),
		kongplete.WithPredictor("input-format", complete.PredictSet("json", "yaml", "toml")),
	)
}

// Script returns the snippet that enables completion of command in shell.
// bin is the path of the executable the shell calls back.
func Script(shell, command, bin string) (string, error) {
	bin = quote(bin)
	switch shell {
	case "bash":
		return fmt.Sprintf("complete -C %s %s\n", bin, command), nil
	case "zsh":
		return fmt.Sprintf("autoload -U +X bashcompinit && bashcompinit\ncomplete -o nospace -C %s %s\n", bin, command), nil
	case "fish":
		var b strings.Builder
		fmt.Fprintf(&b, "function __complete_%s\n", command)
		b.WriteString("    set -lx COMP_LINE (commandline -cp)\n")
		b.WriteString("    test -z (commandline -ct)\n")
		b.WriteString("    and set COMP_LINE \"$COMP_LINE \"\n")
		fmt.Fprintf(&b, "    %s\n", bin)
		b.WriteString("end\n")
		fmt.Fprintf(&b, "complete -f -c %s -a \"(__complete_%s)\"\n", command, command)
		return b.String(), nil
	default:
		return "", errors.NewConfigError(
			fmt.Sprintf("no completion script for %q, use one of %s", shell, strings.Join(Shells, ", ")),
			errors.ErrUnsupportedShell,
		)
	}
}

// quote wraps s in single quotes for POSIX shells and fish.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
