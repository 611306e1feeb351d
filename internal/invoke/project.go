package invoke

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pankaj-dahiya-devops/costctl/internal/operations"
)

// ErrInvalidSelect is returned for projection expressions that cannot be
// evaluated.
var ErrInvalidSelect = errors.New("invalid select expression")

// ValidateSelect checks the shape of a projection expression:
//
//	"*"      the whole response
//	"^Name"  the value bound to parameter Name
//	path     a gjson path into the response, e.g. AnomalyMonitors.#.MonitorArn
func ValidateSelect(expr string) error {
	switch {
	case expr == "" || expr == operations.SelectAll:
		return nil
	case strings.TrimSpace(expr) != expr:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidSelect, expr)
	case expr == "^":
		return fmt.Errorf("%w: %q names no parameter", ErrInvalidSelect, expr)
	}
	return nil
}

// Project applies expr to response. The whole-response expression returns
// response itself, untouched. Paths that match nothing yield nil.
func Project(response, params any, expr string) (any, error) {
	switch {
	case expr == "" || expr == operations.SelectAll:
		return response, nil
	case strings.HasPrefix(expr, "^"):
		return lookup(params, expr[1:])
	default:
		return lookup(response, expr)
	}
}

func lookup(v any, path string) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value for projection: %w", err)
	}
	r := gjson.GetBytes(data, path)
	if !r.Exists() {
		return nil, nil
	}
	return r.Value(), nil
}
