// Package commands parses command-palette input into typed commands the
// update layer routes to session handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeRemove Type = "remove"
	TypeSpin   Type = "spin"
	TypeClear  Type = "clear"
)

type ClearTarget string

const (
	ClearHistory ClearTarget = "history"
	ClearTasks   ClearTarget = "tasks"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type RemoveArgs struct {
	// Index is the 1-based list position shown in the tasks view.
	Index int
}

type ClearArgs struct {
	Target ClearTarget
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Remove *RemoveArgs
	Clear  *ClearArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeRemove:
		return parseRemove(input, args)
	case TypeSpin:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "spin takes no arguments"}
		}
		return Command{Type: TypeSpin, Raw: input}, nil
	case TypeClear:
		return parseClear(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseRemove(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remove requires a task number"}
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("not a task number: %s", args[0])}
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{Index: index}}, nil
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires a target: history or tasks"}
	}
	switch ClearTarget(strings.ToLower(args[0])) {
	case ClearHistory:
		return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Target: ClearHistory}}, nil
	case ClearTasks:
		return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Target: ClearTasks}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown clear target: %s", args[0])}
	}
}
