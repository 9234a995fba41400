package render

import (
	"fmt"
	"io"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Options are format writer options parsed from the output directive.
type Options map[string]string

// WriterFunc renders a document to w.
type WriterFunc func(w io.Writer, doc *Doc, opts Options) error

// Format is one registry entry: a named writer plus the CUE schema its
// options must satisfy. Schemas are closed structs, so an option the
// format does not declare is rejected, not ignored.
type Format struct {
	Name          string
	Write         WriterFunc
	OptionsSchema string
}

var registry = map[string]Format{}

// register adds a format to the registry. Called from writer init funcs;
// duplicate names are a programming error.
func register(f Format) {
	if _, dup := registry[f.Name]; dup {
		panic(fmt.Sprintf("render: duplicate format %q", f.Name))
	}
	registry[f.Name] = f
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a format name and validates the options against the
// format's schema. Unknown names fail here, at lookup time.
func Lookup(name string, opts Options) (Format, error) {
	f, ok := registry[name]
	if !ok {
		return Format{}, &SinkError{
			Code:    ErrCodeUnsupportedFormat,
			Message: fmt.Sprintf("not a registered output format (have %v)", Names()),
			Format:  name,
		}
	}
	if err := validateOptions(f, opts); err != nil {
		return Format{}, err
	}
	return f, nil
}

// validateOptions unifies the given options with the format's CUE schema.
func validateOptions(f Format, opts Options) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(f.OptionsSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("options schema for %q: %w", f.Name, err)
	}

	val := schema
	for key, value := range opts {
		val = val.FillPath(cue.MakePath(cue.Str(key)), value)
	}
	if err := val.Validate(cue.Concrete(false)); err != nil {
		return &SinkError{
			Code:    ErrCodeInvalidArgument,
			Message: fmt.Sprintf("invalid options: %v", err),
			Format:  f.Name,
		}
	}
	return nil
}
