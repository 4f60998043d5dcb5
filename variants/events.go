package variants

import "fmt"

// Event is one user edit of the matrix.
type Event interface {
	apply(m Matrix) (Matrix, error)
}

type AddGroup struct{ Name string }

type RemoveGroup struct{ Name string }

type AddValue struct{ Group, Value string }

type RemoveValue struct{ Group, Value string }

type SetStock struct {
	Assignment Assignment
	Quantity   int
}

func (e AddGroup) apply(m Matrix) (Matrix, error)    { return m.AddGroup(e.Name) }
func (e RemoveGroup) apply(m Matrix) (Matrix, error) { return m.RemoveGroup(e.Name), nil }
func (e AddValue) apply(m Matrix) (Matrix, error)    { return m.AddValue(e.Group, e.Value) }
func (e RemoveValue) apply(m Matrix) (Matrix, error) { return m.RemoveValue(e.Group, e.Value), nil }
func (e SetStock) apply(m Matrix) (Matrix, error)    { return m.SetStock(e.Assignment, e.Quantity) }

// Apply is the reducer (state, event) -> state. On error the original matrix is returned.
func (m Matrix) Apply(ev Event) (Matrix, error) {
	if ev == nil {
		return m, ErrUnknownEvent
	}
	return ev.apply(m)
}

// ApplyAll folds events in order and stops at the first failure, reporting its position.
// The returned matrix is the input matrix when any event fails.
func (m Matrix) ApplyAll(events []Event) (Matrix, error) {
	cur := m
	for i, ev := range events {
		next, err := cur.Apply(ev)
		if err != nil {
			return m, fmt.Errorf("event %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}
