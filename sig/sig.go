package sig

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type ReceivedHandler interface {
	Handle(os.Signal)
}

type ReceivedHandlerFunc func(os.Signal)

// Handle calls the underlying function with the received signal.
func (s ReceivedHandlerFunc) Handle(sig os.Signal) {
	s(sig)
}

// ReceivedError is returned by Loop when a signal arrived. The menu
// treats it as an abort.
type ReceivedError struct {
	Signal os.Signal
}

func (e *ReceivedError) Error() string {
	return fmt.Sprintf("received signal: %s", e.Signal)
}

// ExitStatus is 1, like every other abort.
func (e *ReceivedError) ExitStatus() int {
	return 1
}

type Handler struct {
	onSignalReceived ReceivedHandler
	sigCh            chan os.Signal
}

// DefaultSignals are the signals that abort the menu. SIGHUP is what
// a closing terminal sends.
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP}
}

// New creates a new signal handler that forwards the specified
// signals (default: DefaultSignals) to h, which may be nil.
func New(h ReceivedHandler, sigs ...os.Signal) *Handler {
	if len(sigs) == 0 {
		sigs = DefaultSignals()
	}
	if h == nil {
		h = ReceivedHandlerFunc(func(os.Signal) {})
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	return &Handler{
		onSignalReceived: h,
		sigCh:            ch,
	}
}

// Loop waits for a signal. When one arrives it invokes the handler,
// cancels, and returns a *ReceivedError. Cancellation of ctx by
// somebody else is a normal shutdown and returns nil.
func (h *Handler) Loop(ctx context.Context, cancel func()) error {
	defer cancel()
	defer signal.Stop(h.sigCh)

	select {
	case <-ctx.Done():
		return nil
	case sig := <-h.sigCh:
		h.onSignalReceived.Handle(sig)
		return &ReceivedError{Signal: sig}
	}
}
