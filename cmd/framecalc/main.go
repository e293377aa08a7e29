// Command framecalc runs the glass frame sheets in a terminal and can write
// the same PDF report the web app exports.
//
//	framecalc                                   interactive
//	framecalc -mode CAPSULE -set H=36 -set W=22 -decimals 2
//	framecalc -mode ROUND -set size=18 -name "Rahul" -out report.pdf
//	framecalc hash                              bcrypt hash for APP_USERS
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"GlassFrame/internal/auth"
	"GlassFrame/internal/calc/frame"
	"GlassFrame/internal/calc/report"
	"GlassFrame/internal/format"
)

type setFlags frame.FormValues

func (s setFlags) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (s setFlags) Set(v string) error {
	key, val, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("want key=value, got %q", v)
	}
	s[strings.TrimSpace(key)] = val
	return nil
}

type options struct {
	mode     string
	decimals int
	name     string
	out      string
	values   setFlags
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{values: setFlags{}}
	fs := flag.NewFlagSet("framecalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.mode, "mode", "", "sheet: ROUND, SQUARE_RECT, CAPSULE or HALF_CAPSULE")
	fs.IntVar(&opts.decimals, "decimals", format.DefaultDecimals, "decimals shown")
	fs.StringVar(&opts.name, "name", "", "name printed on the PDF; enables export")
	fs.StringVar(&opts.out, "out", "", "PDF path (default <name>_<sheet>.pdf)")
	fs.Var(opts.values, "set", "input value as key=value, repeatable")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer, p Prompter, now time.Time) error {
	if len(args) > 0 && args[0] == "hash" {
		return runHash(stdout, p)
	}
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	interactive := opts.mode == ""

	var mode frame.Mode
	if interactive {
		modes := frame.Modes()
		labels := make([]string, len(modes))
		for i, m := range modes {
			labels[i] = m.Label()
		}
		idx, err := p.Select("Sheet", labels)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(modes) {
			return frame.ErrUnknownMode
		}
		mode = modes[idx]
	} else {
		if mode, err = frame.ParseMode(opts.mode); err != nil {
			return err
		}
	}

	values := frame.FormValues(opts.values)
	for _, f := range mode.Fields() {
		if _, ok := values[f.Key]; ok {
			continue
		}
		if !interactive {
			continue
		}
		v, err := p.Input(f.Label, "empty or non-numeric counts as 0")
		if err != nil {
			return err
		}
		values[f.Key] = v
	}

	in := frame.ParseInputs(values)
	rows := frame.Evaluate(mode, in)
	printTable(stdout, mode, rows, opts.decimals)

	name := strings.TrimSpace(opts.name)
	if name == "" && interactive {
		ok, err := p.Confirm("Export PDF?", false)
		if err != nil {
			return err
		}
		if ok {
			for name == "" {
				if name, err = p.Input("Name", "required for the PDF"); err != nil {
					return err
				}
				name = strings.TrimSpace(name)
			}
		}
	}
	if name == "" {
		return nil
	}

	path := opts.out
	if path == "" {
		path = report.FileName(name, mode)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Render(f, report.NewSheet(mode, name, in, opts.decimals, now)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved %s\n", path)
	return nil
}

func printTable(w io.Writer, mode frame.Mode, rows []frame.Row, decimals int) {
	fmt.Fprintf(w, "%s\n\n", mode.Label())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Output\tValue\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", r.Label, format.WithUnit(r.Value, decimals, r.Unit))
	}
	tw.Flush()
}

func runHash(stdout io.Writer, p Prompter) error {
	pass, err := p.Password("Password")
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(pass)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr, surveyPrompter{}, time.Now())
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.Is(err, errInterrupted):
		os.Exit(130)
	default:
		log.Fatal(err)
	}
}
