package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-depth", "-top")
	Args    []string // Possible argument values (for non-option arguments)
}

// commandMetadata maps command names to their options and arguments.
var commandMetadata = map[string]CommandMetadata{
	"rank": {
		Options: []string{"-depth", "-fixed", "-limit", "-sample", "-top", "-threads"},
	},
	"load": {
		Options: []string{"-solutions", "-num", "-backend"},
	},
	"save": {
		Options: []string{"-format", "-top"},
	},
	"set": {
		Args: settable,
	},
	"help": {
		Args: helpTopics,
	},
}

var commandNames = []string{
	"help", "load", "set", "info", "rank", "top", "hist", "eval", "sim", "save", "script", "exit",
}

var formatValues = []string{"text", "yaml", "sqlite"}
var backendValues = []string{"dense", "map", "xxhash", "sorted"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// An unterminated quote; fall back to simple space splitting
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "format":
				completions = formatValues
			case "backend":
				completions = backendValues
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
