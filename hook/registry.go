package hook

import "github.com/kenchoi777/steam-limiter/limerrors"

// Target describes one entry point to hook: where its symbol lives and
// which detour it should be redirected to.
type Target struct {
	Name    string
	Library string
	Symbol  string
	Detour  uintptr
}

// Registry is the fixed set of hooks this module installs. Install is
// all-or-nothing: if any attach fails, every record that had armed so far
// in this call is unhooked before the error is returned.
type Registry struct {
	order   []string
	records map[string]*Record
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*Record)}
}

// InstallAll attaches each target in order. On the first failure, it
// unhooks everything it had already armed in this call and returns the
// failure.
func (reg *Registry) InstallAll(targets []Target) error {
	var armedThisCall []*Record
	for _, t := range targets {
		rec, ok := reg.records[t.Name]
		if !ok {
			rec = NewRecord(t.Name)
			reg.records[t.Name] = rec
			reg.order = append(reg.order, t.Name)
		}
		if err := rec.AttachByName(t.Detour, t.Library, t.Symbol); err != nil {
			for _, a := range armedThisCall {
				a.Unhook()
			}
			return limerrors.WrapTarget(err, limerrors.KindResolution, "install-all", t.Name)
		}
		armedThisCall = append(armedThisCall, rec)
	}
	return nil
}

// UninstallAll unhooks every record unconditionally, regardless of whether
// it is currently armed.
func (reg *Registry) UninstallAll() {
	for _, name := range reg.order {
		if rec, ok := reg.records[name]; ok {
			rec.Unhook()
		}
	}
}

// Resume returns the call-through address for a named hook, and whether
// that hook exists and is armed.
func (reg *Registry) Resume(name string) (uintptr, bool) {
	rec, ok := reg.records[name]
	if !ok || !rec.Armed() {
		return 0, false
	}
	return rec.Resume(), true
}

// AllArmed reports whether every record the registry knows about is
// currently armed — the install-all-or-nothing invariant, checkable after
// the fact.
func (reg *Registry) AllArmed() bool {
	for _, name := range reg.order {
		if rec, ok := reg.records[name]; !ok || !rec.Armed() {
			return false
		}
	}
	return len(reg.order) > 0
}
