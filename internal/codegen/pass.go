package codegen

import (
	"github.com/cockroachdb/errors"

	"github.com/okra-platform/modelgen/internal/schema"
)

// Mode selects what a pass generates
type Mode string

const (
	ModeRegistry Mode = "registry"
	ModeEnums    Mode = "enums"
	ModeClasses  Mode = "classes"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeRegistry, ModeEnums, ModeClasses:
		return m, nil
	}
	return "", errors.Newf("unknown generation mode: %s", s)
}

// Pass describes one emission pass. Empty Models/Enums select everything.
type Pass struct {
	Mode   Mode
	Models []string
	Enums  []string
	// Exclude drops models from the selection, e.g. those a best-effort
	// classes pass could not emit
	Exclude []string

	// BestEffort keeps emitting the remaining models when one fails
	BestEffort bool
}

// SelectModels returns the selected models in schema declaration order, each once
func (p Pass) SelectModels(s *schema.Schema) ([]schema.Model, error) {
	wanted, err := nameSet(p.Models, s.ModelNames(), "model")
	if err != nil {
		return nil, err
	}
	excluded := make(map[string]bool, len(p.Exclude))
	for _, name := range p.Exclude {
		excluded[name] = true
	}

	selected := make([]schema.Model, 0, len(s.Models))
	for _, m := range s.Models {
		if (len(p.Models) == 0 || wanted[m.Name]) && !excluded[m.Name] {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

// SelectEnums returns the selected enums in schema declaration order, each once
func (p Pass) SelectEnums(s *schema.Schema) ([]schema.EnumType, error) {
	if len(p.Enums) == 0 {
		return s.Enums, nil
	}
	known := make([]string, 0, len(s.Enums))
	for _, e := range s.Enums {
		known = append(known, e.Name)
	}
	wanted, err := nameSet(p.Enums, known, "enum")
	if err != nil {
		return nil, err
	}
	selected := make([]schema.EnumType, 0, len(wanted))
	for _, e := range s.Enums {
		if wanted[e.Name] {
			selected = append(selected, e)
		}
	}
	return selected, nil
}

func nameSet(names, known []string, kind string) (map[string]bool, error) {
	exists := make(map[string]bool, len(known))
	for _, k := range known {
		exists[k] = true
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if !exists[n] {
			return nil, errors.Newf("%s %q is not declared in the schema", kind, n)
		}
		set[n] = true
	}
	return set, nil
}

// ModelError reports a model that could not be emitted
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return "model " + e.Model + ": " + e.Err.Error()
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// EachModel calls emit for every model in order. Without bestEffort the
// first failure stops the loop; with it, failures are joined and the
// remaining models are still emitted.
func EachModel(models []schema.Model, bestEffort bool, emit func(m schema.Model) error) error {
	var failed []error
	for _, m := range models {
		if err := emit(m); err != nil {
			err = &ModelError{Model: m.Name, Err: err}
			if !bestEffort {
				return err
			}
			failed = append(failed, err)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.Join(failed...)
}

// SkippedModels returns the names of the models reported by the
// ModelErrors in err, in the order they appear
func SkippedModels(err error) []string {
	var names []string
	var walk func(error)
	walk = func(err error) {
		for err != nil {
			if me, ok := err.(*ModelError); ok {
				names = append(names, me.Model)
				return
			}
			if multi, ok := err.(interface{ Unwrap() []error }); ok {
				for _, e := range multi.Unwrap() {
					walk(e)
				}
				return
			}
			err = errors.UnwrapOnce(err)
		}
	}
	walk(err)
	return names
}
