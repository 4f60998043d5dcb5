package variants

import (
	"fmt"
	"strings"
)

// Matrix is the attribute groups of one product together with their reconciled
// combinations. Operations return a new Matrix and leave the receiver untouched.
type Matrix struct {
	Groups       []AttributeGroup `json:"groups"`
	Combinations []Combination    `json:"combinations"`
}

// NewMatrix builds a matrix for groups, carrying stock over from previous.
func NewMatrix(groups []AttributeGroup, previous []Combination) Matrix {
	gs := cloneGroups(groups)
	return Matrix{
		Groups:       gs,
		Combinations: Reconcile(previous, gs),
	}
}

// Build validates groups by replaying them as AddGroup/AddValue edits, so duplicate or
// blank names are rejected, then carries stock over from previous.
func Build(groups []AttributeGroup, previous []Combination) (Matrix, error) {
	for _, c := range previous {
		if c.StockQuantity < 0 {
			return Matrix{}, ErrNegativeStock
		}
	}

	events := make([]Event, 0, len(groups))
	for _, g := range groups {
		events = append(events, AddGroup{Name: g.Name})
		for _, v := range g.Values {
			events = append(events, AddValue{Group: g.Name, Value: v})
		}
	}
	m, err := Matrix{}.ApplyAll(events)
	if err != nil {
		return Matrix{}, err
	}
	return NewMatrix(m.Groups, previous), nil
}

// AddGroup appends an empty attribute group.
func (m Matrix) AddGroup(name string) (Matrix, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return m, ErrEmptyName
	}
	if m.groupIndex(name) >= 0 {
		return m, fmt.Errorf("%w: %s", ErrDuplicateGroup, name)
	}

	groups := cloneGroups(m.Groups)
	groups = append(groups, AttributeGroup{Name: name, Values: []string{}})
	return NewMatrix(groups, m.Combinations), nil
}

// RemoveGroup drops the group and every combination that referenced it.
// Removing an unknown group is a no-op.
func (m Matrix) RemoveGroup(name string) Matrix {
	idx := m.groupIndex(strings.TrimSpace(name))
	if idx < 0 {
		return m.clone()
	}
	groups := cloneGroups(m.Groups)
	groups = append(groups[:idx], groups[idx+1:]...)
	return NewMatrix(groups, m.Combinations)
}

// AddValue appends a value to the named group.
func (m Matrix) AddValue(group, value string) (Matrix, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return m, ErrEmptyName
	}
	idx := m.groupIndex(strings.TrimSpace(group))
	if idx < 0 {
		return m, fmt.Errorf("%w: %s", ErrGroupNotFound, group)
	}
	for _, v := range m.Groups[idx].Values {
		if strings.EqualFold(v, value) {
			return m, fmt.Errorf("%w: %s in %s", ErrDuplicateValue, value, m.Groups[idx].Name)
		}
	}

	groups := cloneGroups(m.Groups)
	groups[idx].Values = append(groups[idx].Values, value)
	return NewMatrix(groups, m.Combinations), nil
}

// RemoveValue drops a value from the named group. Unknown groups or values are ignored.
func (m Matrix) RemoveValue(group, value string) Matrix {
	idx := m.groupIndex(strings.TrimSpace(group))
	if idx < 0 {
		return m.clone()
	}
	value = strings.TrimSpace(value)

	groups := cloneGroups(m.Groups)
	kept := groups[idx].Values[:0]
	for _, v := range groups[idx].Values {
		if !strings.EqualFold(v, value) {
			kept = append(kept, v)
		}
	}
	groups[idx].Values = kept
	return NewMatrix(groups, m.Combinations)
}

// SetStock sets the stock of the combination matching assignment.
func (m Matrix) SetStock(assignment Assignment, qty int) (Matrix, error) {
	if qty < 0 {
		return m, ErrNegativeStock
	}
	out := m.clone()
	key := assignment.Key()
	for i := range out.Combinations {
		if out.Combinations[i].Assignment.Key() == key {
			out.Combinations[i].StockQuantity = qty
			return out, nil
		}
	}
	return m, ErrCombinationNotFound
}

// Find returns the combination matching assignment.
func (m Matrix) Find(assignment Assignment) (Combination, bool) {
	key := assignment.Key()
	for _, c := range m.Combinations {
		if c.Assignment.Key() == key {
			return c, true
		}
	}
	return Combination{}, false
}

// TotalStock sums the stock of every combination.
func (m Matrix) TotalStock() int {
	total := 0
	for _, c := range m.Combinations {
		total += c.StockQuantity
	}
	return total
}

func (m Matrix) groupIndex(name string) int {
	for i, g := range m.Groups {
		if strings.EqualFold(g.Name, name) {
			return i
		}
	}
	return -1
}

func (m Matrix) clone() Matrix {
	combos := make([]Combination, len(m.Combinations))
	for i, c := range m.Combinations {
		combos[i] = Combination{Assignment: c.Assignment.clone(), StockQuantity: c.StockQuantity}
	}
	return Matrix{Groups: cloneGroups(m.Groups), Combinations: combos}
}

func cloneGroups(groups []AttributeGroup) []AttributeGroup {
	out := make([]AttributeGroup, len(groups))
	for i, g := range groups {
		values := make([]string, len(g.Values))
		copy(values, g.Values)
		out[i] = AttributeGroup{Name: g.Name, Values: values}
	}
	return out
}
