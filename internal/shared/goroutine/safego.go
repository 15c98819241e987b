// Package goroutine starts background work that must not take the process
// down when it panics.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"candlepin/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine. A panic is recovered and logged with
// its stack under the given name.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover logs a recovered panic. It must be deferred directly.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
