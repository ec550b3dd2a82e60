package simplex

// bound records one side (lower or upper) of a variable's asserted range,
// together with the term that introduced it.
type bound struct {
	value      DeltaRational
	constraint Term
	has        bool
}

// varState is the per-variable state the PartialModel tracks: its current
// and last-known-consistent assignment plus both bounds.
type varState struct {
	assignment     DeltaRational
	safeAssignment DeltaRational
	lower          bound
	upper          bound
	activity       uint64
}

// PartialModel is the engine's view of "what do we currently believe":
// per-variable assignment and bounds, with the asserted-constraint
// provenance needed to build conflict explanations later.
type PartialModel struct {
	vars []varState
}

// NewPartialModel builds a model for numVars variables, all unbounded and
// assigned zero.
func NewPartialModel(numVars int) *PartialModel {
	return &PartialModel{vars: make([]varState, numVars)}
}

func (m *PartialModel) ensureCapacity(v ArithVar) {
	if int(v) >= len(m.vars) {
		grown := make([]varState, v+1)
		copy(grown, m.vars)
		m.vars = grown
	}
}

func (m *PartialModel) state(v ArithVar) *varState {
	m.ensureCapacity(v)
	return &m.vars[v]
}

// LowerBound returns the current lower bound and whether one is set.
func (m *PartialModel) LowerBound(v ArithVar) (DeltaRational, bool) {
	s := m.state(v)
	return s.lower.value, s.lower.has
}

// UpperBound returns the current upper bound and whether one is set.
func (m *PartialModel) UpperBound(v ArithVar) (DeltaRational, bool) {
	s := m.state(v)
	return s.upper.value, s.upper.has
}

// LowerConstraint returns the term that installed the current lower
// bound, or nil if there is none.
func (m *PartialModel) LowerConstraint(v ArithVar) Term {
	return m.state(v).lower.constraint
}

// UpperConstraint returns the term that installed the current upper
// bound, or nil if there is none.
func (m *PartialModel) UpperConstraint(v ArithVar) Term {
	return m.state(v).upper.constraint
}

// SetLowerBound installs c as the lower bound of v with explanation t,
// and resets v's activity counter (the reserved ejection-heuristic hook,
// see DESIGN.md).
func (m *PartialModel) SetLowerBound(v ArithVar, c DeltaRational, t Term) {
	s := m.state(v)
	s.lower = bound{value: c, constraint: t, has: true}
	s.activity = 0
}

// SetUpperBound installs c as the upper bound of v with explanation t.
func (m *PartialModel) SetUpperBound(v ArithVar, c DeltaRational, t Term) {
	s := m.state(v)
	s.upper = bound{value: c, constraint: t, has: true}
	s.activity = 0
}

// Assignment returns v's current assignment, or its safe (last known
// consistent) assignment if useSafe is true.
func (m *PartialModel) Assignment(v ArithVar, useSafe bool) DeltaRational {
	s := m.state(v)
	if useSafe {
		return s.safeAssignment
	}
	return s.assignment
}

// SetAssignment sets v's current assignment.
func (m *PartialModel) SetAssignment(v ArithVar, val DeltaRational) {
	m.state(v).assignment = val
}

// SetAssignmentAndSafe sets both v's current and safe assignment to val,
// used when installing a value already known to respect v's bounds.
func (m *PartialModel) SetAssignmentAndSafe(v ArithVar, val DeltaRational) {
	s := m.state(v)
	s.assignment = val
	s.safeAssignment = val
}

// BumpActivity increments v's activity counter by one.
func (m *PartialModel) BumpActivity(v ArithVar) {
	m.state(v).activity++
}

// Activity returns v's current activity counter.
func (m *PartialModel) Activity(v ArithVar) uint64 {
	return m.state(v).activity
}

// BelowLowerBound reports whether val is below v's lower bound: strictly
// below if strict, at-or-below otherwise. Absent a lower bound this is
// always false (no lower bound behaves as -infinity).
func (m *PartialModel) BelowLowerBound(v ArithVar, val DeltaRational, strict bool) bool {
	s := m.state(v)
	if !s.lower.has {
		return false
	}
	if strict {
		return val.LessThan(s.lower.value)
	}
	return val.LessEqual(s.lower.value)
}

// AboveUpperBound reports whether val is above v's upper bound,
// symmetrically to BelowLowerBound.
func (m *PartialModel) AboveUpperBound(v ArithVar, val DeltaRational, strict bool) bool {
	s := m.state(v)
	if !s.upper.has {
		return false
	}
	if strict {
		return val.GreaterThan(s.upper.value)
	}
	return val.GreaterEqual(s.upper.value)
}

// StrictlyAboveLowerBound reports whether v's current assignment is
// strictly greater than its lower bound; true (vacuously) when there is
// no lower bound.
func (m *PartialModel) StrictlyAboveLowerBound(v ArithVar) bool {
	s := m.state(v)
	if !s.lower.has {
		return true
	}
	return s.assignment.GreaterThan(s.lower.value)
}

// StrictlyBelowUpperBound reports whether v's current assignment is
// strictly less than its upper bound; true (vacuously) when there is no
// upper bound.
func (m *PartialModel) StrictlyBelowUpperBound(v ArithVar) bool {
	s := m.state(v)
	if !s.upper.has {
		return true
	}
	return s.assignment.LessThan(s.upper.value)
}

// AssignmentIsConsistent reports whether v's current assignment lies
// within its installed bounds.
func (m *PartialModel) AssignmentIsConsistent(v ArithVar) bool {
	s := m.state(v)
	if s.lower.has && s.assignment.LessThan(s.lower.value) {
		return false
	}
	if s.upper.has && s.assignment.GreaterThan(s.upper.value) {
		return false
	}
	return true
}
