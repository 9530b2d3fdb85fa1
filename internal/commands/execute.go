package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
	Pin      func(PinArgs) (Result, error)
	Unpin    func(PinArgs) (Result, error)
	Done     func(DoneArgs) (Result, error)
	Filter   func(FilterArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "category handler not configured"}
		}
		return handlers.Category(*cmd.Category)
	case TypePin:
		if handlers.Pin == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "pin handler not configured"}
		}
		return handlers.Pin(*cmd.Pin)
	case TypeUnpin:
		if handlers.Unpin == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "unpin handler not configured"}
		}
		return handlers.Unpin(*cmd.Unpin)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "filter handler not configured"}
		}
		return handlers.Filter(*cmd.Filter)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
