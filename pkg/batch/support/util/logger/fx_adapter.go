package logger

import (
	"strings"

	"go.uber.org/fx/fxevent"
)

// FxLoggerAdapter adapts the framework logger to the fxevent.Logger interface,
// routing Fx lifecycle events through the leveled logger.
type FxLoggerAdapter struct{}

// NewFxLoggerAdapter creates a new FxLoggerAdapter.
func NewFxLoggerAdapter() fxevent.Logger {
	return &FxLoggerAdapter{}
}

// LogEvent logs an Fx lifecycle event at the appropriate level.
func (l *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		Debugf("Fx: OnStart hook executing: %s", e.FunctionName)
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			Errorf("Fx: OnStart hook failed: %s: %v", e.FunctionName, e.Err)
		} else {
			Debugf("Fx: OnStart hook executed: %s (runtime: %s)", e.FunctionName, e.Runtime)
		}
	case *fxevent.OnStopExecuting:
		Debugf("Fx: OnStop hook executing: %s", e.FunctionName)
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			Errorf("Fx: OnStop hook failed: %s: %v", e.FunctionName, e.Err)
		} else {
			Debugf("Fx: OnStop hook executed: %s (runtime: %s)", e.FunctionName, e.Runtime)
		}
	case *fxevent.Supplied:
		if e.Err != nil {
			Errorf("Fx: supply failed: %s: %v", e.TypeName, e.Err)
		} else {
			Debugf("Fx: supplied: %s", e.TypeName)
		}
	case *fxevent.Provided:
		for _, rtype := range e.OutputTypeNames {
			Debugf("Fx: provided: %s <= %s", rtype, e.ConstructorName)
		}
		if e.Err != nil {
			Errorf("Fx: provide failed: %s: %v", e.ConstructorName, e.Err)
		}
	case *fxevent.Invoking:
		Debugf("Fx: invoking: %s", e.FunctionName)
	case *fxevent.Invoked:
		if e.Err != nil {
			Errorf("Fx: invoke failed: %s: %v", e.FunctionName, e.Err)
		}
	case *fxevent.Stopping:
		Infof("Fx: received signal %s, stopping", strings.ToUpper(e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			Errorf("Fx: stop failed: %v", e.Err)
		}
	case *fxevent.RolledBack:
		Errorf("Fx: start failed, rolling back: %v", e.Err)
	case *fxevent.Started:
		if e.Err != nil {
			Errorf("Fx: start failed: %v", e.Err)
		} else {
			Infof("Fx: started")
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			Errorf("Fx: custom logger initialization failed: %v", e.Err)
		} else {
			Debugf("Fx: initialized custom fxevent.Logger: %s", e.ConstructorName)
		}
	}
}
