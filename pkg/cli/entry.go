// Package cli is the sham shell entry point: flag handling, the
// interactive loop, script execution and one-shot expression mode.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/point-o/sham/internal/command"
	"github.com/point-o/sham/internal/config"
	"github.com/point-o/sham/internal/evaluator"
	"github.com/point-o/sham/internal/store"
	"github.com/point-o/sham/internal/symbols"
)

// Run is the process entry point. It returns the exit code rather than
// calling os.Exit so main stays a one-liner and tests can drive the
// shell end to end.
func Run() int {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // re-panic for the stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
		}
	}()
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

type options struct {
	configPath string
	evalExpr   string
	scriptPath string
	quiet      bool
	noColor    bool
	version    bool
}

func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		switch stripFlagDashes(args[i]) {
		case "v", "version":
			opts.version = true
		case "q", "quiet":
			opts.quiet = true
		case "no-color":
			opts.noColor = true
		case "c", "config":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("-c requires a file path")
			}
			opts.configPath = args[i]
		case "e", "eval":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("-e requires an expression")
			}
			opts.evalExpr = args[i]
		case "f", "file":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("-f requires a script path")
			}
			opts.scriptPath = args[i]
		default:
			return opts, fmt.Errorf("unknown flag %q", args[i])
		}
	}
	return opts, nil
}

// shell binds everything one session needs.
type shell struct {
	env       *symbols.Table
	reg       *command.Registry
	calc      *evaluator.Calculator
	cfg       *config.Config
	sessionID string
	color     bool
	quiet     bool
	out       io.Writer
	errOut    io.Writer
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	if opts.version {
		fmt.Fprintln(out, "sham "+config.Version)
		return 0
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	color := detectColor()
	if cfg.Color != nil {
		color = *cfg.Color
	}
	if opts.noColor {
		color = false
	}

	env := symbols.NewTable()
	sh := &shell{
		env:       env,
		reg:       command.Default(),
		calc:      evaluator.New(env),
		cfg:       cfg,
		sessionID: uuid.NewString(),
		color:     color,
		quiet:     opts.quiet,
		out:       out,
		errOut:    errOut,
	}

	switch {
	case opts.evalExpr != "":
		return sh.evalOnce(opts.evalExpr)
	case opts.scriptPath != "":
		return sh.runScript(opts.scriptPath)
	}
	return sh.interactive(in)
}

// evalOnce handles -e: evaluate one expression, print, exit nonzero on
// an error result.
func (s *shell) evalOnce(expr string) int {
	v := s.calc.Evaluate(expr)
	if evaluator.IsError(v) {
		fmt.Fprintln(s.errOut, v.AsString())
		return 1
	}
	fmt.Fprintln(s.out, v.AsString())
	return 0
}

// runScript executes a command file line by line, continuing past
// failures so one bad line doesn't hide the rest.
func (s *shell) runScript(path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(s.errOut, err)
		return 1
	}
	defer f.Close()

	failures := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, config.CommentPrefix) {
			continue
		}
		if !s.dispatch(line) {
			failures++
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(s.errOut, err)
		return 1
	}
	if failures > 0 {
		fmt.Fprintf(s.errOut, "%d command(s) failed\n", failures)
		return 1
	}
	return 0
}

func (s *shell) interactive(in io.Reader) int {
	if !s.quiet {
		fmt.Fprintf(s.out, "sham %s — session %s\n", config.Version, s.dim(s.sessionID))
		fmt.Fprintln(s.out, `type "help" for commands, "exit" to leave`)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, s.cfg.Prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, config.CommentPrefix) {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		s.dispatch(line)
	}

	return s.autosave()
}

// dispatch routes one input line: session words first, then registered
// commands, and anything else is evaluated as an expression. Reports
// whether the line succeeded.
func (s *shell) dispatch(line string) bool {
	fields := strings.Fields(line)

	switch fields[0] {
	case "help":
		s.printHelp()
		return true
	case "vars":
		s.printVars()
		return true
	case "type":
		return s.printType(fields[1:])
	}

	if cmd, ok := s.reg.Lookup(fields[0]); ok {
		res := cmd.Execute(s.env, fields[1:])
		if !res.OK {
			fmt.Fprintln(s.out, s.red("[Error] "+res.Message))
			return false
		}
		if res.Message != "" {
			fmt.Fprintln(s.out, s.green(res.Message))
		}
		return true
	}

	v := s.calc.Evaluate(line)
	if evaluator.IsError(v) {
		fmt.Fprintln(s.out, s.red(v.AsString()))
		return false
	}
	fmt.Fprintln(s.out, v.AsString())
	return true
}

func (s *shell) printHelp() {
	for _, cmd := range s.reg.Commands() {
		fmt.Fprintf(s.out, "  %s\n", cmd.Usage())
	}
	fmt.Fprintln(s.out, "  vars | type <name> | help | exit")
	fmt.Fprintln(s.out, "  anything else is evaluated as an expression")
}

func (s *shell) printVars() {
	names := s.env.Names()
	if len(names) == 0 {
		fmt.Fprintln(s.out, s.dim("(no variables)"))
		return
	}
	for _, name := range names {
		v, _ := s.env.Get(name)
		fmt.Fprintf(s.out, "  %s = %s %s\n", name, v.AsString(), s.dim("("+v.TypeName()+")"))
	}
}

func (s *shell) printType(args []string) bool {
	if len(args) != 1 {
		fmt.Fprintln(s.out, s.red("[Error] usage: type <name>"))
		return false
	}
	v, ok := s.env.Get(args[0])
	if !ok {
		fmt.Fprintln(s.out, s.red(fmt.Sprintf("[Error] unknown variable '%s'", args[0])))
		return false
	}
	fmt.Fprintln(s.out, v.TypeName())
	return true
}

// autosave writes the session snapshot if the config names a path.
func (s *shell) autosave() int {
	if s.cfg.Autosave == "" {
		return 0
	}
	skipped, err := store.SaveYAML(s.cfg.Autosave, s.env.Snapshot())
	if err != nil {
		fmt.Fprintf(s.errOut, "autosave failed: %v\n", err)
		return 1
	}
	if !s.quiet {
		msg := fmt.Sprintf("session saved to %s", s.cfg.Autosave)
		if skipped > 0 {
			msg += fmt.Sprintf(" (%d skipped)", skipped)
		}
		fmt.Fprintln(s.out, s.dim(msg))
	}
	return 0
}
