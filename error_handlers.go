package prioritypool

// reportInternalError reports an internal pool error.
//
// Internal errors are non-job-related failures such as the aggregated
// result of stopping workers. If no handler is registered, the error is
// silently ignored.
func (p *Pool) reportInternalError(err error) {
	if err == nil {
		return
	}
	if p.opts.OnInternalError != nil {
		p.opts.OnInternalError(err)
	}
}

// reportJobError reports an error produced by a job panic. Job errors do
// not stop pool execution.
func (p *Pool) reportJobError(err error) {
	if err == nil {
		return
	}
	if p.opts.OnJobError != nil {
		p.opts.OnJobError(err)
	}
}
