package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the raw text after the command, spacing preserved.
	RawArgs string
}

// Parse splits a text line into a command and arguments.
//
// Precondition: line should be trimmed of leading/trailing whitespace.
// Postcondition: Returns a ParseResult. If line is empty, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	// Split at first space for the command word
	spaceIdx := strings.IndexByte(line, ' ')
	if spaceIdx < 0 {
		return ParseResult{
			Command: strings.ToLower(line),
		}
	}

	cmd := strings.ToLower(line[:spaceIdx])
	rest := line[spaceIdx+1:]
	rest = strings.TrimSpace(rest)

	var args []string
	if rest != "" {
		args = strings.Fields(rest)
	}

	return ParseResult{
		Command: cmd,
		Args:    args,
		RawArgs: rest,
	}
}

// MaxLogRepeat bounds the repeat count of the log command.
const MaxLogRepeat = 100

// ParseLog interprets the raw arguments of "log <msg> [num]". A trailing
// integer is the repeat count when message text precedes it. The message
// keeps its inner spacing.
//
// Postcondition: Returns msg and a count in [0, MaxLogRepeat], or an error.
func ParseLog(rawArgs string) (msg string, count int, err error) {
	msg = strings.TrimSpace(rawArgs)
	if msg == "" {
		return "", 0, errors.New("usage: log <msg> [num]")
	}
	count = 1
	if i := strings.LastIndexAny(msg, " \t"); i >= 0 {
		if n, convErr := strconv.Atoi(msg[i+1:]); convErr == nil {
			count = n
			msg = strings.TrimRight(msg[:i], " \t")
		}
	}
	if count < 0 || count > MaxLogRepeat {
		return "", 0, fmt.Errorf("num must be 0-%d, got %d", MaxLogRepeat, count)
	}
	return msg, count, nil
}
