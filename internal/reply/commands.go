package reply

import (
	"strings"

	"github.com/memohai/wabridge/internal/media"
)

type commandKind int

const (
	commandEcho commandKind = iota
	commandGreeting
	commandHelp
	commandSample
)

type command struct {
	kind   commandKind
	sample media.Kind
}

var commands = map[string]command{
	"hello":         {kind: commandGreeting},
	"hi":            {kind: commandGreeting},
	"help":          {kind: commandHelp},
	"send image":    {kind: commandSample, sample: media.KindImage},
	"send audio":    {kind: commandSample, sample: media.KindAudio},
	"send video":    {kind: commandSample, sample: media.KindVideo},
	"send document": {kind: commandSample, sample: media.KindDocument},
	"send doc":      {kind: commandSample, sample: media.KindDocument},
}

// normalizeCommand trims and lowercases a text body for command matching.
func normalizeCommand(body string) string {
	return strings.ToLower(strings.TrimSpace(body))
}

func lookupCommand(normalized string) command {
	if cmd, ok := commands[normalized]; ok {
		return cmd
	}
	return command{kind: commandEcho}
}
