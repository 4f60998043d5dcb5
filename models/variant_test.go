package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda-admin/variants"
)

func TestApplyVariantEventsRequest_ToEvents(t *testing.T) {
	req := ApplyVariantEventsRequest{Events: []VariantEventRequest{
		{Type: VariantEventAddGroup, Name: "Color"},
		{Type: VariantEventAddValue, Group: "Color", Value: "Rojo"},
		{Type: VariantEventSetStock, Assignment: variants.Assignment{"Color": "Rojo"}, Quantity: 3},
		{Type: VariantEventRemoveValue, Group: "Color", Value: "Rojo"},
		{Type: VariantEventRemoveGroup, Name: "Color"},
	}}

	events, err := req.ToEvents()
	require.NoError(t, err)
	assert.Equal(t, []variants.Event{
		variants.AddGroup{Name: "Color"},
		variants.AddValue{Group: "Color", Value: "Rojo"},
		variants.SetStock{Assignment: variants.Assignment{"Color": "Rojo"}, Quantity: 3},
		variants.RemoveValue{Group: "Color", Value: "Rojo"},
		variants.RemoveGroup{Name: "Color"},
	}, events)

	_, err = ApplyVariantEventsRequest{Events: []VariantEventRequest{{Type: "rename"}}}.ToEvents()
	assert.ErrorIs(t, err, variants.ErrUnknownEvent)
}
