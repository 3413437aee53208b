package cachemgr

// EventHandler receives orchestrator lifecycle events. Handlers are invoked
// synchronously on the goroutine that produced the event and must not block.
type EventHandler interface {
	OnModuleRegistered(name string)
	OnModuleUnregistered(name string)
	OnModuleStatisticsChanged(name string, stats Statistics)
	OnGlobalCleanupCompleted(result GlobalCleanupResult)
}

// EventFuncs implements EventHandler with optional callbacks.
type EventFuncs struct {
	ModuleRegistered        func(name string)
	ModuleUnregistered      func(name string)
	ModuleStatisticsChanged func(name string, stats Statistics)
	GlobalCleanupCompleted  func(result GlobalCleanupResult)
}

var _ EventHandler = EventFuncs{}

// OnModuleRegistered implements EventHandler.
func (f EventFuncs) OnModuleRegistered(name string) {
	if f.ModuleRegistered != nil {
		f.ModuleRegistered(name)
	}
}

// OnModuleUnregistered implements EventHandler.
func (f EventFuncs) OnModuleUnregistered(name string) {
	if f.ModuleUnregistered != nil {
		f.ModuleUnregistered(name)
	}
}

// OnModuleStatisticsChanged implements EventHandler.
func (f EventFuncs) OnModuleStatisticsChanged(name string, stats Statistics) {
	if f.ModuleStatisticsChanged != nil {
		f.ModuleStatisticsChanged(name, stats)
	}
}

// OnGlobalCleanupCompleted implements EventHandler.
func (f EventFuncs) OnGlobalCleanupCompleted(result GlobalCleanupResult) {
	if f.GlobalCleanupCompleted != nil {
		f.GlobalCleanupCompleted(result)
	}
}
