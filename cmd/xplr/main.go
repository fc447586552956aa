// Command xplr is an interactive, keyboard-driven terminal file explorer
// that prints a result (a focused path or a selection list) to standard
// output on quit, suitable for shell composition like `cd "$(xplr)"`.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sayanarijit/xplr-sub000/internal/appstate"
	"github.com/sayanarijit/xplr-sub000/internal/cliflags"
	"github.com/sayanarijit/xplr-sub000/internal/config"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
	"github.com/sayanarijit/xplr-sub000/internal/pipe"
	"github.com/sayanarijit/xplr-sub000/internal/producer"
	"github.com/sayanarijit/xplr-sub000/internal/runner"
	"github.com/sayanarijit/xplr-sub000/internal/task"
	"github.com/sayanarijit/xplr-sub000/internal/terminal"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

func main() {
	flags := &cliflags.Flags{}

	root := &cobra.Command{
		Use:           "xplr [PATH] [SELECTION]...",
		Short:         "A keyboard-driven terminal file explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, args)
		},
	}

	bindFlags(root, flags)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xplr:", err)
		os.Exit(1)
	}
}

func bindFlags(cmd *cobra.Command, f *cliflags.Flags) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.ReadStdin, "stdin", "", false, "read newline-separated paths from stdin (- on the command line)")
	fl.StringVar(&f.ForceFocus, "force-focus", "", "parsed; has no effect")
	fl.BoolVar(&f.PrintPwdAsResult, "print-pwd-as-result", false, "parsed; has no effect")
	fl.BoolVar(&f.ReadOnly, "read-only", false, "disable commands, mutations and writes")
	fl.BoolVar(&f.Read0, "read0", false, "use NUL to deliminate the input from --pipe-msg-in")
	fl.BoolVar(&f.Write0, "write0", false, "parsed; has no effect (outputs are always newline-delimited)")
	fl.BoolVarP(&f.Null, "null", "0", false, "shorthand for --read0 and --write0")
	fl.BoolVarP(&f.PrintVersion, "version", "V", false, "print the version and exit")
	fl.StringVarP(&f.ConfigPath, "config", "c", "", "path to the config file")
	fl.StringSliceVarP(&f.ExtraConfigs, "extra-config", "C", nil, "extra config files, applied in order after --config")
	fl.StringSliceVar(&f.OnLoad, "on-load", nil, "messages to apply once on startup")
	fl.StringVar(&f.Vroot, "vroot", "", "parsed; has no effect")

	var pipeMsgIn, printMsgIn []string
	fl.StringArrayVarP(&pipeMsgIn, "pipe-msg-in", "m", nil, "FORMAT ARG...: write one message to the session's msg_in pipe")
	fl.StringArrayVarP(&printMsgIn, "print-msg-in", "M", nil, "FORMAT ARG...: print one message formatted for msg_in")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		if len(pipeMsgIn) > 0 {
			f.PipeMsgIn, err = parseFormatArgs(append(pipeMsgIn, args...))
		}
		if err == nil && len(printMsgIn) > 0 {
			f.PrintMsgIn, err = parseFormatArgs(append(printMsgIn, args...))
		}
		return err
	}
}

func parseFormatArgs(raw []string) (*cliflags.FormatArgs, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("expected a FORMAT string")
	}
	return &cliflags.FormatArgs{Format: raw[0], Args: raw[1:]}, nil
}

func run(f *cliflags.Flags, args []string) error {
	if f.PrintVersion {
		fmt.Println(Version)
		return nil
	}

	if f.PipeMsgIn != nil || f.PrintMsgIn != nil {
		return handleMsgInFlags(f)
	}

	var rest []string
	for _, a := range args {
		if a == "-" {
			f.ReadStdin = true
		} else {
			rest = append(rest, a)
		}
	}
	args = rest
	if len(args) > 0 {
		f.Path = args[0]
		f.Selection = args[1:]
	}
	if f.ReadStdin {
		sel, err := readLinesFromStdin()
		if err != nil {
			return err
		}
		f.Selection = append(f.Selection, sel...)
	}

	pwd := f.Path
	if pwd == "" {
		var err error
		pwd, err = os.Getwd()
		if err != nil {
			return err
		}
	}
	pwd, err := filepath.Abs(pwd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	pid := os.Getpid()
	sessionPath := pipe.SessionDir(pid)
	p, err := pipe.Create(sessionPath)
	if err != nil {
		return err
	}
	defer pipe.Remove(sessionPath)

	app := appstate.New(Version, pid, sessionPath, pwd)
	app.ConfigVersion = cfg.Version
	app.ReadOnly = f.ReadOnly || cfg.General.ReadOnly
	app.Config = cfg.ExplorerConfig()
	app.Layout = cfg.General.Layout
	for _, sel := range f.Selection {
		abs, err := filepath.Abs(sel)
		if err == nil {
			app.Selected = append(app.Selected, abs)
		}
	}
	if keyTable, err := cfg.KeyTable(); err == nil {
		app.Keys = keyTable
	} else {
		return err
	}

	queue := task.NewQueue()
	for _, m := range cfg.OnLoad {
		queue.Push(task.PriorityExternal, msgin.FromExternal(m), nil)
	}
	for _, m := range f.OnLoad {
		parsed, err := msgin.ParseExternalMsg([]byte(m))
		if err != nil {
			return fmt.Errorf("--on-load %q: %w", m, err)
		}
		queue.Push(task.PriorityExternal, msgin.FromExternal(parsed), nil)
	}
	queue.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.ExplorePwd}), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	producer.StartAutoRefresher(ctx, queue, time.Second)
	producer.StartPipeReader(ctx, queue, p.MsgIn, 50*time.Millisecond)

	pwdRetarget := make(chan string, 1)
	producer.StartPwdWatcher(ctx, queue, pwd, pwdRetarget)
	if err := producer.StartFsnotifyWatcher(ctx, queue, pwd, pwdRetarget); err != nil {
		fmt.Fprintln(os.Stderr, "xplr: fsnotify watcher disabled:", err)
	}

	term := terminal.New()
	pause := make(chan bool, 1)
	producer.StartEventReader(ctx, queue, terminal.NewEventSource(), pause)

	if err := term.EnableRawMode(); err != nil {
		return err
	}
	if err := term.EnterAltScreen(); err != nil {
		return err
	}
	defer term.LeaveAltScreen()
	defer term.DisableRawMode()

	result, err := runner.Run(ctx, app, queue, term, pause, pwdRetarget)
	if err != nil {
		return err
	}

	if result.HasOutput {
		fmt.Println(result.Output)
	}
	return nil
}

func loadConfig(f *cliflags.Flags) (*config.Config, error) {
	path := f.ConfigPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(path, Version)
	if err != nil {
		return nil, err
	}
	for _, extra := range f.ExtraConfigs {
		overlay, err := config.LoadFrom(extra, Version)
		if err != nil {
			return nil, err
		}
		mergeExtra(cfg, overlay)
	}
	return cfg, nil
}

// mergeExtra layers an --extra-config overlay's general layout/filters/
// sorters onto cfg; a thin public-surface wrapper so main doesn't reach
// into config's unexported merge.
func mergeExtra(cfg, overlay *config.Config) {
	if overlay.General.Layout != "" {
		cfg.General.Layout = overlay.General.Layout
	}
	cfg.General.ShowHidden = cfg.General.ShowHidden || overlay.General.ShowHidden
	cfg.General.ReadOnly = cfg.General.ReadOnly || overlay.General.ReadOnly
	cfg.Filters = append(cfg.Filters, overlay.Filters...)
	cfg.Sorters = append(cfg.Sorters, overlay.Sorters...)
	cfg.OnLoad = append(cfg.OnLoad, overlay.OnLoad...)
	for mode, bindings := range overlay.KeyBindings {
		if cfg.KeyBindings == nil {
			cfg.KeyBindings = config.RawKeyBindings{}
		}
		if cfg.KeyBindings[mode] == nil {
			cfg.KeyBindings[mode] = map[string][]config.RawExternalMsg{}
		}
		for desc, msgs := range bindings {
			cfg.KeyBindings[mode][desc] = msgs
		}
	}
}

func handleMsgInFlags(f *cliflags.Flags) error {
	if f.PrintMsgIn != nil {
		out, err := f.PrintMsgIn.Render()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	out, err := f.PipeMsgIn.Render()
	if err != nil {
		return err
	}
	target := os.Getenv("XPLR_PIPE_MSG_IN")
	if target == "" {
		target = pipe.FromSessionPath(pipe.SessionDir(os.Getppid())).MsgIn
	}
	fh, err := os.OpenFile(target, os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("writing to %s: %w", target, err)
	}
	defer fh.Close()
	delim := "\n"
	if f.Read0 || f.Null {
		delim = "\x00"
	}
	_, err = fh.WriteString(out + delim)
	return err
}

func readLinesFromStdin() ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
