// Package report is the single place command failures end up. It logs them
// for the operator and never returns an error or stops the process.
package report

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrTransport marks failures talking to the platform (sending a reply,
// REST calls). Wrap it with Transport.
var ErrTransport = errors.New("transport error")

// Transport wraps err as a transport failure. A nil err stays nil.
func Transport(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// Kind classifies err for logs and metrics labels.
func Kind(err error) string {
	if errors.Is(err, ErrTransport) {
		return "transport"
	}
	return "command"
}

// Observer is notified about every reported failure. Metrics plug in here.
type Observer func(command, kind string)

// Reporter logs failures raised while handling invocations.
type Reporter struct {
	log     zerolog.Logger
	observe Observer
}

// New returns a Reporter writing to log. observe may be nil.
func New(log zerolog.Logger, observe Observer) *Reporter {
	return &Reporter{log: log, observe: observe}
}

// Report records that command failed with err.
func (r *Reporter) Report(command string, err error) {
	if r == nil || err == nil {
		return
	}
	kind := Kind(err)
	r.log.Error().
		Str("command", command).
		Str("kind", kind).
		Str("correlation", uuid.NewString()).
		Err(err).
		Msgf("Error in command %s", command)
	r.notify(command, kind)
}

// ReportFramework records a failure not tied to a specific command.
func (r *Reporter) ReportFramework(err error) {
	if r == nil || err == nil {
		return
	}
	r.log.Error().
		Str("kind", Kind(err)).
		Str("correlation", uuid.NewString()).
		Err(err).
		Msg("Framework error")
	r.notify("", Kind(err))
}

// Recover reports a panic raised while running command. Use it deferred.
// An empty command reports the panic as a framework error.
func (r *Reporter) Recover(command string) {
	rec := recover()
	if rec == nil {
		return
	}
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	err = fmt.Errorf("panic: %w", err)
	if command == "" {
		r.ReportFramework(err)
		return
	}
	r.Report(command, err)
}

func (r *Reporter) notify(command, kind string) {
	if r.observe == nil {
		return
	}
	// An observer must not take the reporter down with it.
	defer func() { _ = recover() }()
	r.observe(command, kind)
}
