package cli

import (
	"strings"

	"github.com/roach88/retailgrid/internal/query"
	"github.com/roach88/retailgrid/internal/render"
)

// Directive is one parsed query argument. Directives execute in the
// literal order the caller supplied them; parsing preserves that order
// and does nothing else.
type Directive struct {
	Name     string
	Value    string
	HasValue bool
}

var directiveNames = map[string]bool{
	"select":    true,
	"group":     true,
	"keys":      true,
	"index":     true,
	"header":    true,
	"units":     true,
	"precision": true,
	"format":    true,
	"output":    true,
}

// ParseDirectives splits raw arguments of the form NAME=VALUE (or a bare
// NAME for keys) into directives, rejecting names it does not recognize.
func ParseDirectives(args []string) ([]Directive, error) {
	directives := make([]Directive, 0, len(args))
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !directiveNames[name] {
			return nil, query.NewInvalidArgumentError("unrecognized directive", name)
		}
		if !found && name != "keys" {
			return nil, query.NewInvalidArgumentError("directive requires a value", name)
		}
		directives = append(directives, Directive{Name: name, Value: value, HasValue: found})
	}
	return directives, nil
}

// parseCriteria parses a select value: AXIS:VALUE[,AXIS:VALUE...].
func parseCriteria(value string) ([]query.Criterion, error) {
	var criteria []query.Criterion
	for _, part := range strings.Split(value, ",") {
		axis, val, found := strings.Cut(part, ":")
		if !found || axis == "" || val == "" {
			return nil, query.NewInvalidArgumentError("malformed select criterion", part)
		}
		criteria = append(criteria, query.Criterion{Axis: axis, Value: val})
	}
	return criteria, nil
}

// parseGroupSpecs parses a group value: AXIS:AGG[,AXIS:AGG...].
func parseGroupSpecs(value string) ([]query.GroupSpec, error) {
	var specs []query.GroupSpec
	for _, part := range strings.Split(value, ",") {
		axis, aggName, found := strings.Cut(part, ":")
		if !found || axis == "" {
			return nil, query.NewInvalidArgumentError("malformed group spec", part)
		}
		agg, err := query.ParseAggregate(aggName)
		if err != nil {
			return nil, err
		}
		specs = append(specs, query.GroupSpec{Axis: axis, Aggregate: agg})
	}
	return specs, nil
}

// parseAxisList parses a keys value: AXIS[,AXIS...]. An absent value
// means all enumerable axes.
func parseAxisList(d Directive) []string {
	if !d.HasValue || d.Value == "" {
		return nil
	}
	return strings.Split(d.Value, ",")
}

// parseOutput parses an output value: PATH[,opt:val...]. The path is the
// first segment; everything after it is format writer options.
func parseOutput(value string) (string, render.Options, error) {
	parts := strings.Split(value, ",")
	path := parts[0]
	if path == "" {
		return "", nil, query.NewInvalidArgumentError("output requires a path", value)
	}
	opts := render.Options{}
	for _, part := range parts[1:] {
		key, val, found := strings.Cut(part, ":")
		if !found || key == "" {
			return "", nil, query.NewInvalidArgumentError("malformed output option", part)
		}
		opts[key] = val
	}
	return path, opts, nil
}
