package scanner

// ProgressSink receives periodic notifications while a scan runs. The cadence
// is config-driven (every scan.progress_interval processed files); a sink
// decouples the traversal from any particular output medium.
type ProgressSink interface {
	ScanProgress(processed int)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(processed int)

func (f ProgressFunc) ScanProgress(processed int) { f(processed) }
