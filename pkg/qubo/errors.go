package qubo

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/latticefold/latticefold/pkg/energy"
	"github.com/latticefold/latticefold/pkg/lattice"
)

// ConfigurationError reports compiler input that is rejected before any
// expression is built.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Cause() error { return e.Err }

func configurationError(field string, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Err: errors.Errorf(format, args...)}
}

// IsConfigurationError reports whether err was caused by invalid input:
// an unknown energy model, an unsupported lattice, a residue outside the
// model's alphabet or a rejected option.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	var model energy.InvalidModelError
	var residue *energy.UnknownResidueError
	var arity lattice.UnsupportedArityError
	return errors.As(err, &ce) || errors.As(err, &model) || errors.As(err, &residue) || errors.As(err, &arity)
}

type DiagnosticKind string

const (
	// SimplificationIncomplete marks an expression expanded without
	// canonical simplification because the node budget ran out.
	SimplificationIncomplete DiagnosticKind = "SimplificationIncomplete"
	// DegenerateInput marks a chain too short for any overlap or contact
	// pair.
	DegenerateInput DiagnosticKind = "DegenerateInput"
	// UnreachableContact marks a contact candidate whose residues can
	// never be adjacent once the pinned bits are applied.
	UnreachableContact DiagnosticKind = "UnreachableContact"
)

// Diagnostic is a non-fatal finding of a compile.
type Diagnostic struct {
	Kind    DiagnosticKind
	Subject string
	Message string
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Kind, d.Subject, d.Message)
}
