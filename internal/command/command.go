package command

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
)

var ErrEmptyRequest = errors.New("empty request")
var ErrUnknownCommand = errors.New("unknown command")
var ErrMalformedRequest = errors.New("malformed request")

type Op string

const (
	OpAdd    Op = "ADD"
	OpList   Op = "LIST"
	OpUpdate Op = "UPDATE"
	OpRemove Op = "REMOVE"
	OpHelp   Op = "HELP"
	OpExit   Op = "EXIT"
)

// Request is one decoded console command: the operation, an optional
// record id and an optional set of field assignments.
type Request struct {
	Op     Op
	ID     int
	Fields map[string]string
}

// Parse decodes a console line into a Request. Quoting follows shell
// rules, so values may contain spaces: ADD name="Alice Smith" age=30.
func Parse(line string) (*Request, error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedRequest, err.Error())
	}

	if len(args) == 0 {
		return nil, ErrEmptyRequest
	}

	op := Op(strings.ToUpper(args[0]))
	rest := args[1:]

	switch op {
	case OpList, OpHelp, OpExit:
		if len(rest) != 0 {
			return nil, errors.Wrapf(ErrMalformedRequest, "%s takes no arguments", op)
		}

		return &Request{Op: op}, nil
	case OpAdd:
		ff, err := parseAssignments(rest)
		if err != nil {
			return nil, err
		}

		if len(ff) == 0 {
			return nil, errors.Wrap(ErrMalformedRequest, "ADD requires at least one field=value pair")
		}

		return &Request{Op: op, Fields: ff}, nil
	case OpUpdate:
		if len(rest) == 0 {
			return nil, errors.Wrap(ErrMalformedRequest, "UPDATE requires a record id")
		}

		id, err := parseID(rest[0])
		if err != nil {
			return nil, err
		}

		ff, err := parseAssignments(rest[1:])
		if err != nil {
			return nil, err
		}

		return &Request{Op: op, ID: id, Fields: ff}, nil
	case OpRemove:
		if len(rest) != 1 {
			return nil, errors.Wrap(ErrMalformedRequest, "REMOVE requires exactly one record id")
		}

		id, err := parseID(rest[0])
		if err != nil {
			return nil, err
		}

		return &Request{Op: op, ID: id}, nil
	}

	return nil, errors.Wrapf(ErrUnknownCommand, "%q", args[0])
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedRequest, "record id %q is not an integer", s)
	}

	return id, nil
}

func parseAssignments(args []string) (map[string]string, error) {
	ff := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, errors.Wrapf(ErrMalformedRequest, "expected field=value, got %q", arg)
		}

		ff[name] = value
	}

	return ff, nil
}
