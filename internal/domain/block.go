package domain

import (
	"time"

	"github.com/m04kA/CWS-BookingService/pkg/types"
)

// Block an operator-defined exclusion of booking time.
// A block with Time set excludes exactly that slot; a block without
// Time excludes every slot of the date. Blocks never retroactively
// cancel existing appointments — they only affect future availability.
type Block struct {
	ID        int64
	Date      time.Time
	Time      *types.TimeString // nil = entire date blocked
	CreatedAt time.Time
}

// Covers reports whether the block makes the given time-of-day
// unavailable (the block's date is assumed to match)
func (b *Block) Covers(t types.TimeString) bool {
	return b.Time == nil || *b.Time == t
}
