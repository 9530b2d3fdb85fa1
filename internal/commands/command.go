package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeCategory Type = "category"
	TypePin      Type = "pin"
	TypeUnpin    Type = "unpin"
	TypeDone     Type = "done"
	TypeFilter   Type = "filter"
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
	Name     string
	Category string
	Event    bool
}

type CategoryArgs struct {
	Title string
}

type PinArgs struct {
	Target string
}

type DoneArgs struct {
	Target string
}

type FilterArgs struct {
	Kind string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Category *CategoryArgs
	Pin      *PinArgs
	Unpin    *PinArgs
	Done     *DoneArgs
	Filter   *FilterArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypePin:
		return parsePin(input, TypePin, args)
	case TypeUnpin:
		return parsePin(input, TypeUnpin, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a tracker name"}
	}
	out := AddArgs{}
	nameParts := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "cat:"):
			out.Category = strings.TrimSpace(arg[len("cat:"):])
		case lower == "event":
			out.Event = true
		default:
			nameParts = append(nameParts, arg)
		}
	}
	out.Name = strings.TrimSpace(strings.Join(nameParts, " "))
	if out.Name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a tracker name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a title"}
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Title: title}}, nil
}

func parsePin(raw string, kind Type, args []string) (Command, error) {
	target := strings.TrimSpace(strings.Join(args, " "))
	if target == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: string(kind) + " requires a tracker name"}
	}
	cmd := Command{Type: kind, Raw: raw}
	if kind == TypePin {
		cmd.Pin = &PinArgs{Target: target}
	} else {
		cmd.Unpin = &PinArgs{Target: target}
	}
	return cmd, nil
}

func parseDone(raw string, args []string) (Command, error) {
	target := strings.TrimSpace(strings.Join(args, " "))
	if target == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a tracker name"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: target}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all|today|completed|uncompleted"}
	}
	kind := strings.ToLower(args[0])
	switch kind {
	case "all", "today", "completed", "uncompleted":
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Kind: kind}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", kind)}
	}
}
