package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Go       func(GoArgs) (Result, error)
	Progress func(ProgressArgs) (Result, error)
	Remind   func() (Result, error)
	SignOut  func() (Result, error)
	Category func(CategoryArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeGo:
		if handlers.Go == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "go handler not configured"}
		}
		return handlers.Go(*cmd.Go)
	case TypeProgress:
		if handlers.Progress == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "progress handler not configured"}
		}
		return handlers.Progress(*cmd.Progress)
	case TypeRemind:
		if handlers.Remind == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "remind handler not configured"}
		}
		return handlers.Remind()
	case TypeSignOut:
		if handlers.SignOut == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "signout handler not configured"}
		}
		return handlers.SignOut()
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "category handler not configured"}
		}
		return handlers.Category(*cmd.Category)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
