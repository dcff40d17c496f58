// Package flagx lets several components parse their own subset of os.Args
// with the standard flag package without tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
	"unicode"
)

// FilterArgs keeps only the flags named in valued and boolean (and the values
// that belong to them) from args.
//
// A valued flag may be written as "-name value" or "-name=value"; its value is
// the next argument unless that argument looks like another flag. Negative
// numbers ("-10") are values, not flags. A boolean flag never consumes the
// next argument, so "-shuffle" must use "-shuffle=false" to turn off.
func FilterArgs(args []string, valued []string, boolean []string) []string {
	kinds := make(map[string]bool, len(valued)+len(boolean))
	for _, f := range valued {
		kinds[f] = true
	}
	for _, f := range boolean {
		kinds[f] = false
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, known := kinds[name]; known {
				out = append(out, arg)
			}
			continue
		}

		takesValue, known := kinds[arg]
		if !known {
			continue
		}
		out = append(out, arg)
		if takesValue && i+1 < len(args) && !looksLikeFlag(args[i+1]) {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

func looksLikeFlag(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}
	name := strings.TrimLeft(s, "-")
	return name != "" && unicode.IsLetter(rune(name[0]))
}

// JsonConfigFlags returns the path given with -c or -config in os.Args, or
// "" when neither is present.
func JsonConfigFlags() string {
	return JsonConfigPath(os.Args[1:])
}

// JsonConfigPath is JsonConfigFlags over an explicit argument list.
func JsonConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}, nil))

	return path
}
