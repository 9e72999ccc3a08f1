package shellstate

import (
	"os/signal"
	"syscall"
)

func signal_ignore(sig syscall.Signal) {
	signal.Ignore(sig)
}
