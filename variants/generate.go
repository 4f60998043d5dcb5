// Package variants expands a product's attribute groups (Color, Size, ...) into the
// stock-keeping matrix of every value combination.
package variants

import (
	"sort"
	"strconv"
	"strings"
)

// AttributeGroup is one axis of variation, e.g. Color -> [Red, Blue].
type AttributeGroup struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Assignment maps a group name to one of its values.
type Assignment map[string]string

// Combination is one tuple of the Cartesian product plus its stock.
type Combination struct {
	Assignment    Assignment `json:"assignment"`
	StockQuantity int        `json:"stockQuantity"`
}

// Generate returns the Cartesian product of the groups' values, iterating the first
// group outermost and the last group innermost. No groups, or any group without values,
// yields no combinations.
func Generate(groups []AttributeGroup) []Assignment {
	if len(groups) == 0 {
		return nil
	}
	for _, g := range groups {
		if len(g.Values) == 0 {
			return nil
		}
	}

	result := []Assignment{{}}
	for _, g := range groups {
		next := make([]Assignment, 0, len(result)*len(g.Values))
		for _, prefix := range result {
			for _, v := range g.Values {
				a := make(Assignment, len(prefix)+1)
				for k, pv := range prefix {
					a[k] = pv
				}
				a[g.Name] = v
				next = append(next, a)
			}
		}
		result = next
	}
	return result
}

// Reconcile regenerates the combination set for groups. A new combination whose
// assignment equals a previous one (same pairs, any order) keeps that stock quantity;
// every other combination starts at zero.
func Reconcile(previous []Combination, groups []AttributeGroup) []Combination {
	stockByKey := make(map[string]int, len(previous))
	for _, c := range previous {
		stockByKey[c.Assignment.Key()] = c.StockQuantity
	}

	assignments := Generate(groups)
	out := make([]Combination, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, Combination{
			Assignment:    a,
			StockQuantity: stockByKey[a.Key()],
		})
	}
	return out
}

// Key is the canonical form of an assignment: pairs sorted by group name, each name and
// value quoted so that no input can make two different assignments share a key.
// Two assignments are structurally equal exactly when their keys match.
func (a Assignment) Key() string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)

	b := make([]byte, 0, 16*len(names))
	for _, name := range names {
		b = strconv.AppendQuote(b, name)
		b = append(b, '=')
		b = strconv.AppendQuote(b, a[name])
		b = append(b, ';')
	}
	return string(b)
}

// Equal reports whether both assignments carry the same group->value pairs.
func (a Assignment) Equal(other Assignment) bool {
	if len(a) != len(other) {
		return false
	}
	for k, v := range a {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Label renders the assignment in group order, e.g. "Red / M".
func (a Assignment) Label(groups []AttributeGroup) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if v, ok := a[g.Name]; ok {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " / ")
}

func (a Assignment) clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
