//go:build !unix

package terminal

import "os"

func resizeSignal() []os.Signal {
	return nil
}
