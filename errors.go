package routegen

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// newArityError reports a materializer call with the wrong value
// count. The expected count was fixed when the tree was compiled.
func newArityError(route string, want, got int) error {
	message := fmt.Sprintf("route %s: materializer expects %d value(s), got %d", route, want, got)

	return goerrors.New(message, goerrors.CategoryRouting).
		WithCode(http.StatusBadRequest).
		WithTextCode("ROUTEGEN_ARITY").
		WithMetadata(map[string]any{
			"route": route,
			"want":  want,
			"got":   got,
		})
}

// newEmptyValueError reports an empty value supplied for a segment
// that cannot be dropped from the path.
func newEmptyValueError(route string, seg Segment) error {
	message := fmt.Sprintf("route %s: %s %q requires a non-empty value", route, seg.Kind, seg.Value)

	return goerrors.New(message, goerrors.CategoryRouting).
		WithCode(http.StatusBadRequest).
		WithTextCode("ROUTEGEN_EMPTY_VALUE").
		WithMetadata(map[string]any{
			"route":   route,
			"segment": seg.Pattern(),
			"kind":    seg.Kind.String(),
		})
}

// newUnknownRouteError reports a lookup for a name the compilation
// does not contain.
func newUnknownRouteError(route string) error {
	return goerrors.New(fmt.Sprintf("unknown route %q", route), goerrors.CategoryRouting).
		WithCode(http.StatusNotFound).
		WithTextCode("ROUTEGEN_UNKNOWN_ROUTE").
		WithMetadata(map[string]any{"route": route})
}

// newConfigError reports a bad generation option, e.g. an unparsable
// glob filter.
func newConfigError(message string, metadata map[string]any) error {
	return goerrors.New(message, goerrors.CategoryRouting).
		WithCode(http.StatusBadRequest).
		WithTextCode("ROUTEGEN_CONFIG").
		WithMetadata(metadata)
}

// wrapArtifactError wraps a failure while rendering or writing a
// generated artifact.
func wrapArtifactError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryRouting, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode("ROUTEGEN_ARTIFACT")
}
