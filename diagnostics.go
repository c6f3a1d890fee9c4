package routegen

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Diagnostic codes. Stable identifiers for programmatic handling of
// generation failures.
const (
	DiagBadPattern      = "BAD_PATTERN"
	DiagBadName         = "BAD_NAME"
	DiagParamShadowed   = "PARAM_SHADOWED"
	DiagDuplicateName   = "DUPLICATE_NAME"
	DiagMissingView     = "MISSING_VIEW"
	DiagMissingLayout   = "MISSING_LAYOUT"
	DiagMissingFallback = "MISSING_FALLBACK"
	DiagUnknownBinding  = "UNKNOWN_BINDING"
)

// Diagnostic is one generation-time failure located to a node in the
// declaration tree.
type Diagnostic struct {
	// NodePath is the dotted name path from the root to the offending
	// node, e.g. "root.users.user".
	NodePath string
	// Pattern is the offending node's declared pattern.
	Pattern string
	// Code is one of the Diag* constants.
	Code string
	// Message describes the failure.
	Message string
	// Metadata carries extra context (chunk, index, colliding names).
	Metadata map[string]any
}

func (d Diagnostic) String() string {
	if d.NodePath == "" {
		return fmt.Sprintf("[%s] %s", d.Code, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Code, d.NodePath, d.Message)
}

// GenerationError aggregates every diagnostic produced by a failed
// generation pass. Any diagnostic aborts the whole pass, so the
// presence of this error means no artifact was produced.
type GenerationError struct {
	Diagnostics []Diagnostic

	rich *goerrors.Error
}

func newGenerationError(diags []Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}

	located := make([]map[string]any, 0, len(diags))
	for _, d := range diags {
		located = append(located, map[string]any{
			"node":    d.NodePath,
			"pattern": d.Pattern,
			"code":    d.Code,
			"message": d.Message,
		})
	}

	message := fmt.Sprintf("route generation failed: %s", diags[0].String())
	if len(diags) > 1 {
		message = fmt.Sprintf("%s (and %d more)", message, len(diags)-1)
	}

	rich := goerrors.New(message, goerrors.CategoryConflict).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode("ROUTEGEN_FAILED").
		WithMetadata(map[string]any{
			"diagnostics": located,
			"count":       len(diags),
		})

	return &GenerationError{Diagnostics: diags, rich: rich}
}

func (e *GenerationError) Error() string {
	return e.rich.Error()
}

// Unwrap exposes the rich error so callers using error mappers keep
// their usual goerrors handling.
func (e *GenerationError) Unwrap() error {
	return e.rich
}

// Summary renders every diagnostic, one per line.
func (e *GenerationError) Summary() string {
	lines := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}

// HasCode reports whether any aggregated diagnostic carries code.
func (e *GenerationError) HasCode(code string) bool {
	for _, d := range e.Diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}
