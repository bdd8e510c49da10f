package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusboard/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeSearch   Type = "search"
	TypeFilter   Type = "filter"
	TypeSort     Type = "sort"
	TypeCategory Type = "category"
	TypePriority Type = "priority"
	TypeTemplate Type = "template"
	TypeExport   Type = "export"
	TypeImport   Type = "import"
	TypeSet      Type = "set"
)

// Names lists the palette verbs in display order.
var Names = []Type{TypeAdd, TypeSearch, TypeFilter, TypeSort, TypeCategory, TypePriority, TypeTemplate, TypeExport, TypeImport, TypeSet}

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

const dueLayout = "2006-01-02"

// AddArgs carries a quick-add line. Inline tokens are lifted out of the
// title: #tag, @category, !priority and due:YYYY-MM-DD.
type AddArgs struct {
	Title    string
	Priority model.Priority
	Category string
	Tags     []string
	Due      *time.Time
}

// SearchArgs with empty Text clears the search.
type SearchArgs struct {
	Text string
}

type FilterArgs struct {
	Type model.FilterType
}

// SortArgs leaves the current order in place when Order is empty.
type SortArgs struct {
	By    model.SortType
	Order model.SortOrder
}

// CategoryArgs with empty ID clears the category filter. With Create set it
// describes a new category instead: `category add <name> [#color] [icon:<glyph>]`.
type CategoryArgs struct {
	ID     string
	Create bool
	Name   string
	Color  string
	Icon   string
}

// PriorityArgs with empty Priority clears the priority filter.
type PriorityArgs struct {
	Priority model.Priority
}

type TemplateArgs struct {
	Name string
}

type PathArgs struct {
	Path string
}

// SetArgs edits one preference; Value is validated by the preference itself.
type SetArgs struct {
	Key   string
	Value string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Search   *SearchArgs
	Filter   *FilterArgs
	Sort     *SortArgs
	Category *CategoryArgs
	Priority *PriorityArgs
	Template *TemplateArgs
	Path     *PathArgs
	Set      *SetArgs
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
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Text: strings.Join(args, " ")}}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypePriority:
		return parsePriority(input, args)
	case TypeTemplate:
		if len(args) == 0 {
			return Command{}, invalid("template requires a name")
		}
		return Command{Type: TypeTemplate, Raw: input, Template: &TemplateArgs{Name: strings.Join(args, " ")}}, nil
	case TypeExport, TypeImport:
		if len(args) == 0 {
			return Command{}, invalid(fmt.Sprintf("%s requires a file path", head))
		}
		return Command{Type: Type(head), Raw: input, Path: &PathArgs{Path: strings.Join(args, " ")}}, nil
	case TypeSet:
		if len(args) < 2 {
			return Command{}, invalid("set requires a preference and a value")
		}
		return Command{Type: TypeSet, Raw: input, Set: &SetArgs{Key: args[0], Value: strings.Join(args[1:], " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func invalid(msg string) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: msg}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case len(arg) > 1 && strings.HasPrefix(arg, "#"):
			out.Tags = append(out.Tags, arg[1:])
		case len(arg) > 1 && strings.HasPrefix(arg, "@"):
			out.Category = strings.ToLower(arg[1:])
		case len(arg) > 1 && strings.HasPrefix(arg, "!"):
			p, err := model.ParsePriority(arg[1:])
			if err != nil {
				return Command{}, invalid(err.Error())
			}
			out.Priority = p
		case strings.HasPrefix(strings.ToLower(arg), "due:"):
			due, err := time.ParseInLocation(dueLayout, arg[len("due:"):], time.Local)
			if err != nil {
				return Command{}, invalid(fmt.Sprintf("due date must be %s", dueLayout))
			}
			out.Due = &due
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("filter requires one of all, active, completed, overdue")
	}
	f, err := model.ParseFilterType(args[0])
	if err != nil {
		return Command{}, invalid(err.Error())
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Type: f}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) == 0 || len(args) > 2 {
		return Command{}, invalid("sort requires a field and an optional order")
	}
	by, err := model.ParseSortType(args[0])
	if err != nil {
		return Command{}, invalid(err.Error())
	}
	out := SortArgs{By: by}
	if len(args) == 2 {
		order, err := model.ParseSortOrder(args[1])
		if err != nil {
			return Command{}, invalid(err.Error())
		}
		out.Order = order
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &out}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) > 0 && strings.EqualFold(args[0], "add") {
		return parseCategoryAdd(raw, args[1:])
	}
	if len(args) != 1 {
		return Command{}, invalid("category requires an id or none")
	}
	id := strings.ToLower(args[0])
	if id == "none" {
		id = ""
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{ID: id}}, nil
}

func parseCategoryAdd(raw string, args []string) (Command, error) {
	out := CategoryArgs{Create: true}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "#"):
			if !model.IsHexColor(arg) {
				return Command{}, invalid(fmt.Sprintf("color must be #rgb or #rrggbb, got %s", arg))
			}
			out.Color = strings.ToLower(arg)
		case strings.HasPrefix(strings.ToLower(arg), "icon:") && len(arg) > len("icon:"):
			out.Icon = arg[len("icon:"):]
		default:
			words = append(words, arg)
		}
	}
	out.Name = strings.Join(words, " ")
	if out.Name == "" {
		return Command{}, invalid("category add requires a name")
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &out}, nil
}

func parsePriority(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("priority requires low, medium, high or none")
	}
	if strings.EqualFold(args[0], "none") {
		return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{}}, nil
	}
	p, err := model.ParsePriority(args[0])
	if err != nil {
		return Command{}, invalid(err.Error())
	}
	return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{Priority: p}}, nil
}
