package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a fixed set of choices, so
// invalid values fail at flag parse time instead of inside the command.
type enumValue struct {
	value   *string
	choices []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(target *string, def string, choices ...string) *enumValue {
	*target = def

	return &enumValue{value: target, choices: choices}
}

func (e *enumValue) String() string {
	return *e.value
}

func (e *enumValue) Set(val string) error {
	for _, choice := range e.choices {
		if val == choice {
			*e.value = val

			return nil
		}
	}

	return fmt.Errorf("must be one of %s", strings.Join(e.choices, ", "))
}

func (e *enumValue) Type() string {
	return "string"
}
