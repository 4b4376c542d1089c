package shell

import (
	"embed"
	"errors"
	"strings"
)

//go:embed helptext/*.txt
var helptext embed.FS

var helpTopics = []string{"load", "set", "rank", "top", "hist", "eval", "sim", "save", "script"}

func usageTopic(topic string) (string, error) {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return "", errors.New("there is no help text for the topic " + topic)
	}
	return strings.TrimRight(string(dat), "\n"), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	topic := "usage"
	if len(cmd.args) > 0 {
		topic = cmd.args[0]
	}
	text, err := usageTopic(topic)
	if err != nil {
		return nil, err
	}
	return msg(text), nil
}
