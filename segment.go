package routegen

import (
	"fmt"
	"strings"
)

// SegmentKind identifies how one chunk of a path pattern matches.
type SegmentKind int

const (
	SegmentStatic SegmentKind = iota
	SegmentParam
	SegmentOptionalParam
	SegmentWildcard
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentParam:
		return "param"
	case SegmentOptionalParam:
		return "optional-param"
	case SegmentWildcard:
		return "wildcard"
	default:
		return "static"
	}
}

// Segment is one classified chunk of a path pattern. Value holds the
// literal text for static segments and the parameter name for dynamic
// ones.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// StaticSegment returns a literal segment (e.g. "users").
func StaticSegment(literal string) Segment {
	return Segment{Kind: SegmentStatic, Value: literal}
}

// ParamSegment returns a required parameter segment (e.g. ":id").
func ParamSegment(name string) Segment {
	return Segment{Kind: SegmentParam, Value: name}
}

// OptionalParamSegment returns a parameter segment that may be absent
// (e.g. ":tab?"). An empty value drops the segment from materialized
// paths.
func OptionalParamSegment(name string) Segment {
	return Segment{Kind: SegmentOptionalParam, Value: name}
}

// WildcardSegment returns a trailing catch-all segment (e.g. "*rest").
func WildcardSegment(name string) Segment {
	return Segment{Kind: SegmentWildcard, Value: name}
}

// IsDynamic reports whether the segment consumes a materializer value.
func (s Segment) IsDynamic() bool {
	return s.Kind != SegmentStatic
}

// Pattern renders the segment back in pattern syntax.
func (s Segment) Pattern() string {
	switch s.Kind {
	case SegmentParam:
		return ":" + s.Value
	case SegmentOptionalParam:
		return ":" + s.Value + "?"
	case SegmentWildcard:
		return "*" + s.Value
	default:
		return s.Value
	}
}

func (s Segment) String() string {
	return s.Pattern()
}

// splitPatternChunks trims the surrounding slashes and splits the
// remainder. Duplicate slashes collapse to nothing, so "/a//b" yields
// the same chunks as "/a/b".
func splitPatternChunks(pattern string) []string {
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return nil
	}

	parts := strings.Split(trimmed, "/")
	chunks := parts[:0]
	for _, part := range parts {
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks
}

func classifyChunk(chunk string) Segment {
	if strings.HasPrefix(chunk, "*") {
		return WildcardSegment(strings.TrimPrefix(chunk, "*"))
	}
	if strings.HasPrefix(chunk, ":") {
		name := strings.TrimPrefix(chunk, ":")
		if strings.HasSuffix(name, "?") {
			return OptionalParamSegment(strings.TrimSuffix(name, "?"))
		}
		return ParamSegment(name)
	}
	return StaticSegment(chunk)
}

// patternFault is a classifier failure before it is located to a node.
type patternFault struct {
	message  string
	metadata map[string]any
}

// parsePattern classifies every chunk of pattern. On any fault it
// returns no segments: a malformed pattern never reaches the tree.
func parsePattern(pattern string) ([]Segment, []patternFault) {
	var faults []patternFault

	if !strings.HasPrefix(pattern, "/") {
		faults = append(faults, patternFault{
			message: fmt.Sprintf("pattern %q must start with '/'", pattern),
			metadata: map[string]any{
				"pattern": pattern,
			},
		})
	}

	chunks := splitPatternChunks(pattern)
	segments := make([]Segment, 0, len(chunks))

	for i, chunk := range chunks {
		seg := classifyChunk(chunk)

		if seg.IsDynamic() && seg.Value == "" {
			faults = append(faults, patternFault{
				message: fmt.Sprintf("pattern %q has a %s segment with an empty name", pattern, seg.Kind),
				metadata: map[string]any{
					"pattern":     pattern,
					"chunk":       chunk,
					"chunk_index": i,
				},
			})
		}

		if seg.Kind == SegmentWildcard && i != len(chunks)-1 {
			faults = append(faults, patternFault{
				message: fmt.Sprintf("pattern %q has a wildcard segment %q before the end; wildcards must be trailing", pattern, chunk),
				metadata: map[string]any{
					"pattern":     pattern,
					"chunk":       chunk,
					"chunk_index": i,
				},
			})
		}

		segments = append(segments, seg)
	}

	if len(faults) > 0 {
		return nil, faults
	}
	return segments, nil
}
