package variants

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_CartesianCompleteness(t *testing.T) {
	tests := []struct {
		name   string
		groups []AttributeGroup
		want   int
	}{
		{"no groups", nil, 0},
		{"single group", []AttributeGroup{{Name: "Color", Values: []string{"Red", "Blue"}}}, 2},
		{"two groups", []AttributeGroup{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Size", Values: []string{"S", "M", "L"}},
		}, 6},
		{"three groups", []AttributeGroup{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Size", Values: []string{"S", "M", "L"}},
			{Name: "Fabric", Values: []string{"Cotton", "Fleece"}},
		}, 12},
		{"empty group collapses", []AttributeGroup{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Size", Values: nil},
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.groups)
			assert.Len(t, got, tt.want)

			seen := make(map[string]bool)
			for _, a := range got {
				assert.Len(t, a, len(tt.groups))
				assert.False(t, seen[a.Key()], "duplicate tuple %v", a)
				seen[a.Key()] = true
			}
		})
	}
}

func TestGenerate_Ordering(t *testing.T) {
	groups := []AttributeGroup{
		{Name: "Color", Values: []string{"Red", "Blue"}},
		{Name: "Size", Values: []string{"S", "M"}},
	}

	got := Generate(groups)

	require.Len(t, got, 4)
	want := []Assignment{
		{"Color": "Red", "Size": "S"},
		{"Color": "Red", "Size": "M"},
		{"Color": "Blue", "Size": "S"},
		{"Color": "Blue", "Size": "M"},
	}
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "position %d: want %v got %v", i, want[i], got[i])
	}
}

func TestAssignmentKey_OrderIndependent(t *testing.T) {
	a := Assignment{"Color": "Red", "Size": "M"}
	b := Assignment{"Size": "M", "Color": "Red"}
	c := Assignment{"Color": "Red"}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestAssignmentKey_SeparatorsInValues(t *testing.T) {
	tests := []struct {
		name string
		a, b Assignment
	}{
		{
			name: "unit separator inside a value",
			a:    Assignment{"A": "x\x1eB\x1fy", "C": "z"},
			b:    Assignment{"A": "x", "B": "y", "C": "z"},
		},
		{
			name: "quote and equals inside a value",
			a:    Assignment{"A": `x";"B"="y`},
			b:    Assignment{"A": "x", "B": "y"},
		},
		{
			name: "value moved into the name",
			a:    Assignment{"A=x": ""},
			b:    Assignment{"A": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.a.Equal(tt.b))
			assert.NotEqual(t, tt.a.Key(), tt.b.Key())
		})
	}
}

func TestAddValue_PreservesStock(t *testing.T) {
	m, err := Matrix{}.AddGroup("Color")
	require.NoError(t, err)
	m, err = m.AddValue("Color", "Red")
	require.NoError(t, err)
	m, err = m.AddValue("Color", "Blue")
	require.NoError(t, err)
	m, err = m.SetStock(Assignment{"Color": "Red"}, 5)
	require.NoError(t, err)
	m, err = m.SetStock(Assignment{"Color": "Blue"}, 3)
	require.NoError(t, err)

	m, err = m.AddValue("Color", "Green")
	require.NoError(t, err)

	require.Len(t, m.Combinations, 3)
	stock := map[string]int{}
	for _, c := range m.Combinations {
		stock[c.Assignment["Color"]] = c.StockQuantity
	}
	assert.Equal(t, map[string]int{"Red": 5, "Blue": 3, "Green": 0}, stock)
}

func TestAddValue_ToSecondAxisKeepsMatchingTuples(t *testing.T) {
	m := NewMatrix([]AttributeGroup{
		{Name: "Color", Values: []string{"Red"}},
		{Name: "Size", Values: []string{"S"}},
	}, nil)
	m, err := m.SetStock(Assignment{"Color": "Red", "Size": "S"}, 7)
	require.NoError(t, err)

	m, err = m.AddValue("Size", "M")
	require.NoError(t, err)

	c, ok := m.Find(Assignment{"Size": "S", "Color": "Red"})
	require.True(t, ok)
	assert.Equal(t, 7, c.StockQuantity)
	c, ok = m.Find(Assignment{"Color": "Red", "Size": "M"})
	require.True(t, ok)
	assert.Equal(t, 0, c.StockQuantity)
	assert.Equal(t, 7, m.TotalStock())
}

func TestAddGroup_DuplicateRejected(t *testing.T) {
	m, err := Matrix{}.AddGroup("Color")
	require.NoError(t, err)

	again, err := m.AddGroup("Color")
	assert.True(t, errors.Is(err, ErrDuplicateGroup))
	assert.Equal(t, m, again)

	_, err = m.AddGroup("  color ")
	assert.ErrorIs(t, err, ErrDuplicateGroup)

	count := 0
	for _, g := range again.Groups {
		if g.Name == "Color" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddGroup_EmptyName(t *testing.T) {
	_, err := Matrix{}.AddGroup("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAddValue_Errors(t *testing.T) {
	m := NewMatrix([]AttributeGroup{{Name: "Size", Values: []string{"S"}}}, nil)

	_, err := m.AddValue("Size", "S")
	assert.ErrorIs(t, err, ErrDuplicateValue)

	_, err = m.AddValue("Color", "Red")
	assert.ErrorIs(t, err, ErrGroupNotFound)

	_, err = m.AddValue("Size", "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRemoveGroup_DropsReferencingCombinations(t *testing.T) {
	m := NewMatrix([]AttributeGroup{
		{Name: "Color", Values: []string{"Red", "Blue"}},
		{Name: "Size", Values: []string{"S", "M"}},
	}, nil)
	m, err := m.SetStock(Assignment{"Color": "Red", "Size": "S"}, 4)
	require.NoError(t, err)

	out := m.RemoveGroup("Size")

	require.Len(t, out.Combinations, 2)
	for _, c := range out.Combinations {
		_, hasSize := c.Assignment["Size"]
		assert.False(t, hasSize)
		assert.Equal(t, 0, c.StockQuantity)
	}
	// receiver untouched
	assert.Len(t, m.Combinations, 4)
	assert.Len(t, m.Groups, 2)
}

func TestRemoveGroupAndValue_UnknownIsNoop(t *testing.T) {
	m := NewMatrix([]AttributeGroup{{Name: "Size", Values: []string{"S", "M"}}}, nil)

	assert.Equal(t, m, m.RemoveGroup("Color"))
	assert.Equal(t, m, m.RemoveValue("Color", "Red"))
	assert.Equal(t, m, m.RemoveValue("Size", "XL"))
}

func TestRemoveValue(t *testing.T) {
	m := NewMatrix([]AttributeGroup{{Name: "Size", Values: []string{"S", "M", "L"}}}, nil)
	m, err := m.SetStock(Assignment{"Size": "L"}, 2)
	require.NoError(t, err)

	out := m.RemoveValue("Size", "M")

	assert.Equal(t, []string{"S", "L"}, out.Groups[0].Values)
	require.Len(t, out.Combinations, 2)
	assert.Equal(t, 2, out.Combinations[1].StockQuantity)
	assert.Equal(t, []string{"S", "M", "L"}, m.Groups[0].Values)
}

func TestSetStock_Errors(t *testing.T) {
	m := NewMatrix([]AttributeGroup{{Name: "Size", Values: []string{"S"}}}, nil)

	_, err := m.SetStock(Assignment{"Size": "S"}, -1)
	assert.ErrorIs(t, err, ErrNegativeStock)

	_, err = m.SetStock(Assignment{"Size": "XL"}, 1)
	assert.ErrorIs(t, err, ErrCombinationNotFound)
}

func TestApplyAll_StopsOnFailure(t *testing.T) {
	m := Matrix{}

	out, err := m.ApplyAll([]Event{
		AddGroup{Name: "Color"},
		AddValue{Group: "Color", Value: "Red"},
		AddValue{Group: "Color", Value: "Red"},
	})

	assert.ErrorIs(t, err, ErrDuplicateValue)
	assert.Contains(t, err.Error(), "event 2")
	assert.Equal(t, m, out)

	out, err = m.ApplyAll([]Event{
		AddGroup{Name: "Color"},
		AddValue{Group: "Color", Value: "Red"},
		SetStock{Assignment: Assignment{"Color": "Red"}, Quantity: 9},
		AddGroup{Name: "Size"},
		AddValue{Group: "Size", Value: "M"},
		RemoveValue{Group: "Size", Value: "M"},
		RemoveGroup{Name: "Size"},
	})
	require.NoError(t, err)
	require.Len(t, out.Combinations, 1)
	// the Size round-trip passed through an empty product, so stock was not retained
	assert.Equal(t, 0, out.Combinations[0].StockQuantity)
}

func TestApply_NilEvent(t *testing.T) {
	_, err := Matrix{}.Apply(nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestSKU(t *testing.T) {
	groups := []AttributeGroup{
		{Name: "Color", Values: []string{"Sky blue"}},
		{Name: "Size", Values: []string{"m"}},
	}

	assert.Equal(t, "HOOD-SKY_BLUE-M", SKU("hood", groups, Assignment{"Size": "m", "Color": "Sky blue"}))
	assert.Equal(t, "SKY_BLUE-M", SKU("", groups, Assignment{"Size": "m", "Color": "Sky blue"}))
}

func TestLabel(t *testing.T) {
	groups := []AttributeGroup{{Name: "Color"}, {Name: "Size"}}
	assert.Equal(t, "Red / M", Assignment{"Size": "M", "Color": "Red"}.Label(groups))
}

func TestBuild(t *testing.T) {
	m, err := Build([]AttributeGroup{
		{Name: " Color ", Values: []string{"Red", " Blue"}},
		{Name: "Size", Values: []string{"S"}},
	}, []Combination{{Assignment: Assignment{"Color": "Blue", "Size": "S"}, StockQuantity: 6}})
	require.NoError(t, err)

	assert.Equal(t, []AttributeGroup{
		{Name: "Color", Values: []string{"Red", "Blue"}},
		{Name: "Size", Values: []string{"S"}},
	}, m.Groups)
	assert.Equal(t, 6, m.TotalStock())

	_, err = Build([]AttributeGroup{{Name: "Size", Values: []string{"S", "s"}}}, nil)
	assert.ErrorIs(t, err, ErrDuplicateValue)

	_, err = Build([]AttributeGroup{{Name: "Size"}, {Name: "size"}}, nil)
	assert.ErrorIs(t, err, ErrDuplicateGroup)

	_, err = Build(nil, []Combination{{StockQuantity: -1}})
	assert.ErrorIs(t, err, ErrNegativeStock)
}
