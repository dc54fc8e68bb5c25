package dmenu

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/peco/dmenu/candidate"
	"github.com/peco/dmenu/config"
)

const usageLine = `usage: dmenu [-bfivP] [-l lines] [-h height] [-p prompt] [-fn font] [-m monitor]
             [-nb color] [-nf color] [-sb color] [-sf color] [-w windowid]
             [-hb color] [-hf color] [-hp items] [-dy command]
`

// CLIOptions are the command line flags. Options that take a value
// are pointers so that an explicit flag can be told apart from the
// configured default.
type CLIOptions struct {
	OptHelp         bool    `long:"help" description:"show this help message and exit"`
	OptVersion      bool    `short:"v" long:"version" description:"print the version and exit"`
	OptBottom       bool    `short:"b" long:"bottom" description:"appear at the bottom of the screen"`
	OptFast         bool    `short:"f" long:"fast" description:"grab the keyboard before reading stdin"`
	OptCentered     bool    `short:"c" long:"center" description:"center the menu on the screen"`
	OptNoFuzzy      bool    `short:"F" long:"no-fuzzy" description:"match tokens instead of fuzzy matching"`
	OptIgnoreCase   bool    `short:"i" long:"ignore-case" description:"match case-insensitively"`
	OptPassword     bool    `short:"P" long:"password" description:"hide the input and do not read stdin"`
	OptLines        *int    `short:"l" long:"lines" description:"list vertically with this many lines"`
	OptLineHeight   *int    `short:"h" long:"line-height" description:"minimum height of one menu line"`
	OptMonitor      *int    `short:"m" long:"monitor" description:"monitor to appear on"`
	OptPrompt       *string `short:"p" long:"prompt" description:"prompt to the left of the input field"`
	OptFont         *string `long:"fn" description:"font or font set"`
	OptNormBg       *string `long:"nb" description:"normal background color"`
	OptNormFg       *string `long:"nf" description:"normal foreground color"`
	OptSelBg        *string `long:"sb" description:"selected background color"`
	OptSelFg        *string `long:"sf" description:"selected foreground color"`
	OptHpBg         *string `long:"hb" description:"high priority background color"`
	OptHpFg         *string `long:"hf" description:"high priority foreground color"`
	OptEmbed        string  `short:"w" long:"embed" description:"tty device to appear on"`
	OptBorderWidth  *int    `long:"bw" description:"border width"`
	OptHighPriority string  `long:"hp" description:"comma separated high priority items"`
	OptDynamic      string  `long:"dy" description:"command producing candidates for every query change"`
}

// argOptions maps the single dash spelling of every option that takes
// a value to its long name.
var argOptions = map[string]string{
	"-l":  "lines",
	"-h":  "line-height",
	"-m":  "monitor",
	"-p":  "prompt",
	"-w":  "embed",
	"-fn": "fn",
	"-nb": "nb",
	"-nf": "nf",
	"-sb": "sb",
	"-sf": "sf",
	"-hb": "hb",
	"-hf": "hf",
	"-bw": "bw",
	"-hp": "hp",
	"-dy": "dy",
}

// normalizeArgs rewrites "-fn font" style arguments into "--fn=font"
// so that multi letter single dash options survive the parser, and
// so that values may start with a dash.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		long, ok := argOptions[args[i]]
		switch {
		case !ok:
			out = append(out, args[i])
		case i+1 < len(args):
			out = append(out, "--"+long+"="+args[i+1])
			i++
		default:
			out = append(out, "--"+long)
		}
	}
	return out
}

func (options *CLIOptions) parse(s []string, stderr io.Writer) error {
	p := flags.NewParser(options, flags.PassDoubleDash)
	args, err := p.ParseArgs(normalizeArgs(s))
	if err == nil && len(args) > 0 {
		err = errors.Errorf("unexpected argument '%s'", args[0])
	}
	if err == nil {
		err = options.Validate()
	}
	if err != nil {
		_, _ = io.WriteString(stderr, usageLine)
		return usageError{err: err}
	}
	return nil
}

func (options CLIOptions) Validate() error {
	if options.OptLines != nil && *options.OptLines < 0 {
		return errors.Errorf("invalid number of lines: %d", *options.OptLines)
	}
	if options.OptBorderWidth != nil && *options.OptBorderWidth < 0 {
		return errors.Errorf("invalid border width: %d", *options.OptBorderWidth)
	}
	return nil
}

// Apply overrides cfg with every option given on the command line.
func (options CLIOptions) Apply(cfg *config.Config) {
	if options.OptBottom {
		cfg.Bottom = true
	}
	if options.OptFast {
		cfg.FastStart = true
	}
	if options.OptCentered {
		cfg.Centered = true
	}
	if options.OptNoFuzzy {
		cfg.Fuzzy = false
	}
	if options.OptIgnoreCase {
		cfg.IgnoreCase = true
	}
	if options.OptPassword {
		cfg.Password = true
	}

	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setInt(&cfg.Lines, options.OptLines)
	setInt(&cfg.LineHeight, options.OptLineHeight)
	setInt(&cfg.Monitor, options.OptMonitor)
	setInt(&cfg.BorderWidth, options.OptBorderWidth)
	setString(&cfg.Prompt, options.OptPrompt)
	setString(&cfg.Font, options.OptFont)
	setString(&cfg.Colors.Norm.Bg, options.OptNormBg)
	setString(&cfg.Colors.Norm.Fg, options.OptNormFg)
	setString(&cfg.Colors.Sel.Bg, options.OptSelBg)
	setString(&cfg.Colors.Sel.Fg, options.OptSelFg)
	setString(&cfg.Colors.Hp.Bg, options.OptHpBg)
	setString(&cfg.Colors.Hp.Fg, options.OptHpFg)

	if options.OptEmbed != "" {
		cfg.EmbedWindow = options.OptEmbed
	}
	if options.OptHighPriority != "" {
		cfg.HighPriority = candidate.ParseHighPriorityList(options.OptHighPriority)
	}
	if options.OptDynamic != "" {
		cfg.DynamicCommand = options.OptDynamic
	}
}

func (options CLIOptions) help() []byte {
	buf := bytes.Buffer{}

	fmt.Fprintf(&buf, "%s\nOptions:\n", usageLine)

	t := reflect.TypeOf(options)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag

		var o string
		switch long := tag.Get("long"); {
		case tag.Get("short") != "":
			o = fmt.Sprintf("-%s, --%s", tag.Get("short"), long)
		case len(long) == 2:
			o = "-" + long
		default:
			o = "--" + long
		}

		fmt.Fprintf(
			&buf,
			"  %-21s %s\n",
			o,
			tag.Get("description"),
		)
	}

	return buf.Bytes()
}
