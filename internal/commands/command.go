package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeGo       Type = "go"
	TypeProgress Type = "progress"
	TypeRemind   Type = "remind"
	TypeSignOut  Type = "signout"
	TypeCategory Type = "category"
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

type GoArgs struct {
	Screen string
}

// ProgressArgs sets the selected task's completion. Percent is not clamped
// here.
type ProgressArgs struct {
	Percent int
}

type CategoryArgs struct {
	Name string
}

type Command struct {
	Type     Type
	Raw      string
	Go       *GoArgs
	Progress *ProgressArgs
	Category *CategoryArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeGo:
		return parseGo(input, args)
	case TypeProgress:
		return parseProgress(input, args)
	case TypeRemind:
		return Command{Type: TypeRemind, Raw: input}, nil
	case TypeSignOut, "logout":
		return Command{Type: TypeSignOut, Raw: input}, nil
	case TypeCategory:
		return parseCategory(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseGo(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "go requires a screen name"}
	}
	return Command{Type: TypeGo, Raw: raw, Go: &GoArgs{Screen: args[0]}}, nil
}

func parseProgress(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "progress requires a percentage"}
	}
	pct, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid percentage %q", args[0])}
	}
	return Command{Type: TypeProgress, Raw: raw, Progress: &ProgressArgs{Percent: pct}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a name"}
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: name}}, nil
}
