package implicit

import "context"

// Warning is a non-fatal codec read diagnostic: an unknown element or
// attribute that was skipped rather than rejected, or, with
// ReadOptions.Lenient, a ref that could not be resolved.
type Warning struct {
	Kind    Kind
	Element string
	Attr    string
	Message string
}

// ReadOptions configures ReadFunction.
type ReadOptions struct {
	// Ctx is checked for cancellation between node reads. A nil Ctx
	// disables the check.
	Ctx context.Context

	// Lenient, when true, degrades an unresolvable ref attribute from a
	// fatal DanglingReference error to a warning, leaving the input
	// unlinked, for compatibility with files whose references were never
	// checked eagerly. It does not by itself run the Validator; callers
	// run Validator.Validate separately and may set Validator.Lenient
	// there too.
	Lenient bool

	// Strict, when true, rejects a negative accuraterange attribute with
	// SchemaViolation instead of silently clamping it to 0 (see node.go's
	// SetAccurateRange).
	Strict bool
}

// WriteOptions configures WriteFunction.
type WriteOptions struct {
	// Ctx is checked for cancellation between node writes.
	Ctx context.Context
}

func checkCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return &Error{Kind: KindCancelled, Op: "codec"}
	default:
		return nil
	}
}
