package models

import "strings"

// CommandType enumerates supported inventory commands.
type CommandType string

const (
	CommandAdd     CommandType = "add"
	CommandRemove  CommandType = "remove"
	CommandQty     CommandType = "qty"
	CommandLow     CommandType = "low"
	CommandReport  CommandType = "report"
	CommandSave    CommandType = "save"
	CommandLoad    CommandType = "load"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed text instruction such as "add apple 10".
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text. The verb is
// case-insensitive; arguments keep their case since item names are case-sensitive.
func ParseCommand(message string) Command {
	cmd := Command{Raw: message}

	tokens := strings.Fields(message)
	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	switch CommandType(head) {
	case CommandAdd, CommandRemove, CommandQty, CommandLow, CommandReport, CommandSave, CommandLoad:
		cmd.Type = CommandType(head)
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
