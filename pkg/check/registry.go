package check

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/lintcore/pkg/config"
)

// Registry holds registered checks, indexed by qualified name and
// grouped by department. Registration happens in an explicit pass before
// analysis starts; during a run the registry is read-only. The mutex
// exists because registration and listing interleave in tests.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Check
	byDept map[string][]string
}

// NewRegistry creates an empty check registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Check),
		byDept: make(map[string][]string),
	}
}

// Enlist adds a check to the registry. A check with the same qualified
// name replaces the existing entry.
func (r *Registry) Enlist(c Check) {
	name := c.Name()
	dept := config.Department(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; !exists {
		r.byDept[dept] = append(r.byDept[dept], name)
	}
	r.byName[name] = c
}

// Get retrieves a check by its qualified name.
func (r *Registry) Get(name string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// Lookup returns the checks matching a query. The query may be a
// qualified name, a department name, or a bare check name without its
// department. Results are sorted by qualified name; an unknown query
// returns nil.
func (r *Registry) Lookup(query string) []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.byName[query]; ok {
		return []Check{c}
	}

	if names, ok := r.byDept[query]; ok {
		out := make([]Check, 0, len(names))
		for _, name := range names {
			out = append(out, r.byName[name])
		}
		sortChecks(out)
		return out
	}

	// Bare check name: match the part after the department.
	var out []Check
	for name, c := range r.byName {
		if _, short, found := strings.Cut(name, "/"); found && short == query {
			out = append(out, c)
		}
	}
	sortChecks(out)
	return out
}

// All returns every registered check except test-only ones, sorted by
// qualified name.
func (r *Registry) All() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Check, 0, len(r.byName))
	for _, c := range r.byName {
		if isTestOnly(c) {
			continue
		}
		out = append(out, c)
	}
	sortChecks(out)
	return out
}

// Names returns the qualified names of every non-test-only check, sorted.
func (r *Registry) Names() []string {
	all := r.All()
	out := make([]string, len(all))
	for i, c := range all {
		out[i] = c.Name()
	}
	return out
}

// Departments returns the department names with at least one registered
// check, sorted.
func (r *Registry) Departments() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byDept))
	for dept := range r.byDept {
		out = append(out, dept)
	}
	slices.Sort(out)
	return out
}

func sortChecks(checks []Check) {
	slices.SortFunc(checks, func(a, b Check) int {
		return cmp.Compare(a.Name(), b.Name())
	})
}

// testOnly is implemented by fixture checks that should not appear in
// listings. Production checks never implement it.
type testOnly interface {
	TestOnly() bool
}

func isTestOnly(c Check) bool {
	t, ok := c.(testOnly)
	return ok && t.TestOnly()
}
