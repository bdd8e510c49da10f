package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Search   func(SearchArgs) (Result, error)
	Filter   func(FilterArgs) (Result, error)
	Sort     func(SortArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
	Priority func(PriorityArgs) (Result, error)
	Template func(TemplateArgs) (Result, error)
	Export   func(PathArgs) (Result, error)
	Import   func(PathArgs) (Result, error)
	Set      func(SetArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		return dispatch(cmd.Type, handlers.Add, cmd.Add)
	case TypeSearch:
		return dispatch(cmd.Type, handlers.Search, cmd.Search)
	case TypeFilter:
		return dispatch(cmd.Type, handlers.Filter, cmd.Filter)
	case TypeSort:
		return dispatch(cmd.Type, handlers.Sort, cmd.Sort)
	case TypeCategory:
		return dispatch(cmd.Type, handlers.Category, cmd.Category)
	case TypePriority:
		return dispatch(cmd.Type, handlers.Priority, cmd.Priority)
	case TypeTemplate:
		return dispatch(cmd.Type, handlers.Template, cmd.Template)
	case TypeExport:
		return dispatch(cmd.Type, handlers.Export, cmd.Path)
	case TypeImport:
		return dispatch(cmd.Type, handlers.Import, cmd.Path)
	case TypeSet:
		return dispatch(cmd.Type, handlers.Set, cmd.Set)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func dispatch[A any](t Type, handler func(A) (Result, error), args *A) (Result, error) {
	if handler == nil {
		return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s arguments missing", t)}
	}
	return handler(*args)
}
