package store

// Notifier is the transient-notification seam: the resource stores push
// one human-readable line per resolved operation through it, and the
// surface decides how to show it (the original dashboard used toasts).
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier drops every notification. Useful for embedders that only
// care about returned errors.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Recorder collects notifications in order, for tests and batch runs.
type Recorder struct {
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(message string) { r.Successes = append(r.Successes, message) }
func (r *Recorder) Error(message string)   { r.Errors = append(r.Errors, message) }
