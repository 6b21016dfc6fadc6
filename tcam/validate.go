package tcam

import (
	"fmt"

	"github.com/IvanBrykalov/tcam/internal/bitmask"
)

// validate checks that (kind, mask) is a legal pattern for a table of
// the given width and matching mode. The rules, per kind:
//   - KindExact: mask must be all ones within the width.
//   - KindArbitrary: any in-width mask is legal.
//   - KindPrefix: mask must be a contiguous MSB-aligned run.
//
// The mode further gates which kinds may be inserted at all: exact
// tables accept only exact entries, prefix tables accept prefix and
// exact entries (an exact match is the full-width prefix), arbitrary
// tables accept everything.
func validate(width int, mode MatchMode, kind Kind, mask uint64) error {
	if !kindAllowed(mode, kind) {
		return fmt.Errorf("%w: kind %s not allowed in mode %d", ErrInvalidMask, kind, mode)
	}
	if !bitmask.InWidth(mask, width) {
		return fmt.Errorf("%w: mask %#x exceeds width %d", ErrInvalidMask, mask, width)
	}
	switch kind {
	case KindExact:
		if mask != bitmask.WidthMask(width) {
			return fmt.Errorf("%w: exact entry requires all-ones mask", ErrInvalidMask)
		}
	case KindPrefix:
		if _, ok := bitmask.PrefixLen(width, mask); !ok {
			return fmt.Errorf("%w: mask %#x is not a contiguous prefix", ErrInvalidMask, mask)
		}
	case KindArbitrary:
		// Any in-width mask is legal.
	default:
		return fmt.Errorf("%w: unknown entry kind %d", ErrInvalidMask, kind)
	}
	return nil
}

func kindAllowed(mode MatchMode, kind Kind) bool {
	switch mode {
	case ModeExact:
		return kind == KindExact
	case ModePrefix:
		return kind == KindPrefix || kind == KindExact
	case ModeArbitrary:
		return true
	default:
		return false
	}
}
