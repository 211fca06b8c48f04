package clk

import (
	"fmt"
	"log"
	"sync"
)

// Registry owns every clock of a provider. Clocks live in a flat array
// indexed by a dense numeric identifier, fixed at construction; nothing is
// added or removed after Publish. Construction and Publish run on a single
// goroutine; after that, consumer operations may run concurrently and the
// registry serializes the ones that transition hardware state.
type Registry struct {
	mu        sync.Mutex
	nodes     []Clock
	index     map[string]int
	resolved  [][]int // per node: parent candidate -> node id, -1 if unregistered
	published bool
}

// NewRegistry allocates the handle array for identifiers 0..n-1.
func NewRegistry(n int) *Registry {
	return &Registry{
		nodes: make([]Clock, n),
		index: make(map[string]int, n),
	}
}

// Register stores c at id. Identifiers are dense: every slot must be
// filled exactly once before Publish.
func (r *Registry) Register(id int, c Clock) error {
	if r.published {
		return fmt.Errorf("%q: registry already published: %w", c.Name(), ErrRegistration)
	}
	if id < 0 || id >= len(r.nodes) {
		return fmt.Errorf("%q: id %d outside 0..%d: %w", c.Name(), id, len(r.nodes)-1, ErrRegistration)
	}
	if r.nodes[id] != nil {
		return fmt.Errorf("%q: id %d already holds %q: %w", c.Name(), id, r.nodes[id].Name(), ErrRegistration)
	}
	if prev, ok := r.index[c.Name()]; ok {
		return fmt.Errorf("%q: name already registered at id %d: %w", c.Name(), prev, ErrRegistration)
	}
	r.nodes[id] = c
	r.index[c.Name()] = id
	return nil
}

// Unregister drops every handle in one pass, for teardown after a failed
// publish.
func (r *Registry) Unregister() {
	for i := range r.nodes {
		r.nodes[i] = nil
	}
	r.index = make(map[string]int)
	r.resolved = nil
	r.published = false
}

// Validate checks that every identifier slot is populated. A hole means
// the construction tables are out of step with the identifier space - a
// bug, not a runtime condition.
func (r *Registry) Validate() error {
	var missing []int
	for i, c := range r.nodes {
		if c == nil {
			missing = append(missing, i)
		}
	}
	if len(missing) != 0 {
		log.Printf("clk: %d of %d clock ids unpopulated: %v", len(missing), len(r.nodes), missing)
		return fmt.Errorf("ids %v: %w", missing, ErrMissingEntry)
	}
	return nil
}

// resolveParents binds parent names to node indices. A single-parent clock
// whose parent isn't registered is an error; a selector may carry
// candidates the table never registers (they resolve to -1 and only fail
// if the hardware actually selects them).
func (r *Registry) resolveParents() error {
	resolved := make([][]int, len(r.nodes))
	for i, c := range r.nodes {
		ps := c.Parents()
		ids := make([]int, len(ps))
		for j, name := range ps {
			id, ok := r.index[name]
			if !ok {
				if len(ps) == 1 {
					return fmt.Errorf("%q: parent %q: %w", c.Name(), name, ErrMissingEntry)
				}
				id = -1
			}
			ids[j] = id
		}
		resolved[i] = ids
	}
	r.resolved = resolved
	return nil
}

// Publish validates the table, resolves parent links and opens the
// registry for lookups. On failure, nothing is published and the caller
// should Unregister.
func (r *Registry) Publish() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := r.resolveParents(); err != nil {
		return err
	}
	r.published = true
	return nil
}

// NumClocks returns the size of the identifier space.
func (r *Registry) NumClocks() int {
	return len(r.nodes)
}

// Lookup returns the clock registered at id.
func (r *Registry) Lookup(id int) (Clock, error) {
	if id < 0 || id >= len(r.nodes) || r.nodes[id] == nil {
		return nil, fmt.Errorf("id %d: %w", id, ErrMissingEntry)
	}
	return r.nodes[id], nil
}

// LookupName returns the clock registered under name.
func (r *Registry) LookupName(name string) (Clock, error) {
	id, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrMissingEntry)
	}
	return r.nodes[id], nil
}

// parent returns the id of the node currently feeding id, or -1 for a
// source. An error means the selector points at an unregistered candidate.
func (r *Registry) parent(id int) (int, error) {
	ids := r.resolved[id]
	if len(ids) == 0 {
		return -1, nil
	}
	c := r.nodes[id]
	pi := c.ParentIndex()
	if pi < 0 || pi >= len(ids) || ids[pi] < 0 {
		return -1, fmt.Errorf("%q: selected parent %d not registered: %w", c.Name(), pi, ErrMissingEntry)
	}
	return ids[pi], nil
}

func (r *Registry) checkPublished() error {
	if !r.published {
		return fmt.Errorf("registry not published: %w", ErrRegistration)
	}
	return nil
}

// Rate computes the output rate of id by walking up its active parent
// chain to a source and recalculating top-down.
func (r *Registry) Rate(id int) (uint64, error) {
	if err := r.checkPublished(); err != nil {
		return 0, err
	}
	if _, err := r.Lookup(id); err != nil {
		return 0, err
	}
	return r.rate(id)
}

func (r *Registry) rate(id int) (uint64, error) {
	p, err := r.parent(id)
	if err != nil {
		return 0, err
	}
	var parentRate uint64
	if p >= 0 {
		parentRate, err = r.rate(p)
		if err != nil {
			return 0, err
		}
	}
	return r.nodes[id].RecalcRate(parentRate), nil
}

// PrepareEnable prepares and enables id and every ancestor up to its
// source, source first, so that a gated leaf's request brings up the whole
// chain.
func (r *Registry) PrepareEnable(id int) error {
	if err := r.checkPublished(); err != nil {
		return err
	}
	if _, err := r.Lookup(id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prepareEnable(id)
}

func (r *Registry) prepareEnable(id int) error {
	p, err := r.parent(id)
	if err != nil {
		return err
	}
	if p >= 0 {
		if err := r.prepareEnable(p); err != nil {
			return err
		}
	}
	c := r.nodes[id]
	if err := c.Prepare(); err != nil {
		return fmt.Errorf("couldn't prepare %q: %w", c.Name(), err)
	}
	if err := c.Enable(); err != nil {
		return fmt.Errorf("couldn't enable %q: %w", c.Name(), err)
	}
	return nil
}

// Disable gates id alone. Ancestors keep running: disabling a chain is
// leaf-first by convention and the caller's responsibility. Critical
// clocks refuse.
func (r *Registry) Disable(id int) error {
	if err := r.checkPublished(); err != nil {
		return err
	}
	c, err := r.Lookup(id)
	if err != nil {
		return err
	}
	if c.Flags()&Critical != 0 {
		return fmt.Errorf("%q is critical: %w", c.Name(), ErrInvalidState)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return c.Disable()
}

// Unprepare powers id down after it was disabled.
func (r *Registry) Unprepare(id int) error {
	if err := r.checkPublished(); err != nil {
		return err
	}
	c, err := r.Lookup(id)
	if err != nil {
		return err
	}
	if c.Flags()&Critical != 0 {
		return fmt.Errorf("%q is critical: %w", c.Name(), ErrInvalidState)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Unprepare()
	return nil
}

// SetRate requests an exact output rate from id, which must implement
// RateClock.
func (r *Registry) SetRate(id int, rateHz uint64) error {
	if err := r.checkPublished(); err != nil {
		return err
	}
	c, err := r.Lookup(id)
	if err != nil {
		return err
	}
	rc, ok := c.(RateClock)
	if !ok {
		return fmt.Errorf("%q: rate is fixed: %w", c.Name(), ErrInvalidState)
	}
	p, err := r.parent(id)
	if err != nil {
		return err
	}
	var parentRate uint64
	if p >= 0 {
		parentRate, err = r.rate(p)
		if err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return rc.SetRate(rateHz, parentRate)
}
