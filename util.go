package bytehuff

import (
	"context"
	"log/slog"
	mathbits "math/bits"
)

// log2 returns the number of bits needed to represent x, which is also a
// reasonable capacity hint for the depth of a balanced tree with x nodes.
func log2(x int) int {
	if x <= 0 {
		x = 1
	}
	return mathbits.Len(uint(x))
}

func dbg(logger *slog.Logger, msg string, args ...any) {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug(msg, args...)
	}
}
