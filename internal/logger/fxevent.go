package logger

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx/fxevent"
)

// FxLogger routes fx lifecycle events through zerolog.
type FxLogger struct {
	logger zerolog.Logger
}

// NewFxLogger returns an fxevent.Logger writing at debug level, errors at error level.
func NewFxLogger(logger *zerolog.Logger) fxevent.Logger {
	return &FxLogger{logger: logger.With().Str("layer", "fx").Logger()}
}

// LogEvent implements fxevent.Logger.
func (l *FxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		l.result(e.Err).
			Str("callee", e.FunctionName).
			Str("registered_by", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStart hook executed")
	case *fxevent.OnStopExecuted:
		l.result(e.Err).
			Str("callee", e.FunctionName).
			Str("registered_by", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStop hook executed")
	case *fxevent.Provided:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("constructor", e.ConstructorName).Msg("provide failed")
			return
		}
		l.logger.Debug().Str("constructor", e.ConstructorName).Strs("types", e.OutputTypeNames).Msg("provided")
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Str("function", e.FunctionName).Str("stack", e.Trace).Msg("invoke failed")
		}
	case *fxevent.Stopping:
		l.logger.Info().Str("signal", e.Signal.String()).Msg("received signal")
	case *fxevent.RollingBack:
		l.logger.Error().Err(e.StartErr).Msg("start failed, rolling back")
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error().Err(e.Err).Msg("start failed")
			return
		}
		l.logger.Info().Msg("started")
	case *fxevent.Stopped:
		l.result(e.Err).Msg("stopped")
	}
}

func (l *FxLogger) result(err error) *zerolog.Event {
	if err != nil {
		return l.logger.Error().Err(err)
	}
	return l.logger.Debug()
}
