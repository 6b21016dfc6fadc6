package tcam

import "errors"

// Error taxonomy for configuration operations. All errors are returned
// to the caller; nothing panics for ordinary operational conditions.
var (
	// ErrIndexOutOfRange - Insert/Delete index >= capacity.
	// Always rejected, never silently clamped.
	ErrIndexOutOfRange = errors.New("tcam: index out of range")

	// ErrInvalidMask - the mask fails the validation rule for the
	// table's matching mode (or the entry kind is not allowed by the
	// mode). Rejected at insert time so the matcher never sees a
	// malformed entry.
	ErrInvalidMask = errors.New("tcam: mask not valid for matching mode")

	// ErrTableFull - Learn found no free index. The caller must delete
	// an entry or insert at an explicit index.
	ErrTableFull = errors.New("tcam: table full")

	// ErrConflictingPriority - the new entry would tie with an existing
	// entry at a different index: equal specificity, overlapping match
	// sets, and payloads not known to be equal. Caught at insert time
	// so Result.Ambiguous never fires in a valid configuration.
	ErrConflictingPriority = errors.New("tcam: conflicting priority")
)
