package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/birdulon/wordlerank/config"
	"github.com/birdulon/wordlerank/runner"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoEngine          = errors.New("please load a word list first with the `load` command")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	cfg      *config.Config
	execPath string
	ctx      context.Context

	engine *runner.Engine
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc := newController(context.Background(), cfg, execPath, os.Stdout)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mwordlerank>\033[0m ",
		HistoryFile:     "/tmp/wordlerank-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc
}

func newController(ctx context.Context, cfg *config.Config, execPath string, out io.Writer) *ShellController {
	return &ShellController{
		out:      out,
		cfg:      cfg,
		execPath: execPath,
		ctx:      log.Logger.WithContext(ctx),
	}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its positional arguments
// and its "-name value" options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "exit", "bye":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "load":
		return sc.load(cmd)
	case "set":
		return sc.set(cmd)
	case "info":
		return sc.info(cmd)
	case "rank":
		return sc.rank(cmd)
	case "top":
		return sc.top(cmd)
	case "hist":
		return sc.hist(cmd)
	case "eval":
		return sc.eval(cmd)
	case "sim":
		return sc.sim(cmd)
	case "save":
		return sc.save(cmd)
	case "script":
		return sc.script(cmd)
	}
	return nil, fmt.Errorf("command %q not recognized; type help for a list", cmd.cmd)
}

var errExit = errors.New("exit")

// Execute runs one line. It returns false once the shell should stop.
func (sc *ShellController) Execute(sig chan os.Signal, line string) bool {
	cmd, err := extractFields(strings.TrimSpace(line))
	if err == errNoData {
		return true
	}
	if err != nil {
		sc.showError(err)
		return true
	}
	resp, err := sc.dispatch(cmd)
	if err == errExit {
		sig <- syscall.SIGINT
		return false
	}
	if err != nil {
		sc.showError(err)
		return true
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return true
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if !sc.Execute(sig, line) {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	log.Info().Msg("shell-cleanup")
}
