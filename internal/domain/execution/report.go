package execution

import "sync"

// ReportEntry is the verification status of one component.
type ReportEntry struct {
	Component string
	Verified  bool
	Detail    string
}

// InstallationReport maps component names to their verified status.
// It is built incrementally and iterates in insertion order.
type InstallationReport struct {
	mu      sync.RWMutex
	entries []ReportEntry
	index   map[string]int
}

// NewInstallationReport creates an empty report.
func NewInstallationReport() *InstallationReport {
	return &InstallationReport{index: make(map[string]int)}
}

// Record sets the status of a component. Recording a component again keeps
// its position; it stays verified only if every recorded check passed.
func (r *InstallationReport) Record(component string, verified bool, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[component]
	if !ok {
		r.index[component] = len(r.entries)
		r.entries = append(r.entries, ReportEntry{Component: component, Verified: verified, Detail: detail})
		return
	}

	e := &r.entries[i]
	e.Verified = e.Verified && verified
	switch {
	case detail == "" || detail == e.Detail:
	case e.Detail == "":
		e.Detail = detail
	case !verified:
		e.Detail = detail + "; " + e.Detail
	default:
		e.Detail = e.Detail + "; " + detail
	}
}

// Get returns the entry for component.
func (r *InstallationReport) Get(component string) (ReportEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[component]
	if !ok {
		return ReportEntry{}, false
	}
	return r.entries[i], true
}

// Entries returns all entries in insertion order.
func (r *InstallationReport) Entries() []ReportEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ReportEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Passed returns the names of verified components.
func (r *InstallationReport) Passed() []string {
	return r.names(true)
}

// Failed returns the names of components that failed verification.
func (r *InstallationReport) Failed() []string {
	return r.names(false)
}

// AllPassed reports whether every component was verified.
func (r *InstallationReport) AllPassed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if !e.Verified {
			return false
		}
	}
	return true
}

// Len returns the number of components.
func (r *InstallationReport) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *InstallationReport) names(verified bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, e := range r.entries {
		if e.Verified == verified {
			out = append(out, e.Component)
		}
	}
	return out
}
