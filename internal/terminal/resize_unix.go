//go:build unix

package terminal

import (
	"os"
	"syscall"
)

func resizeSignal() []os.Signal {
	return []os.Signal{syscall.SIGWINCH}
}
