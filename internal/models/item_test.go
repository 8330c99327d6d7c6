package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusTransferred.Valid())
	assert.False(t, ItemStatus("Lost Forever").Valid())
	assert.False(t, ItemStatus("pending").Valid(), "status values are case sensitive")
}

func TestItemStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusMatched.Terminal())
	assert.True(t, StatusReturned.Terminal())
	assert.True(t, StatusTransferred.Terminal())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusMatched))
	assert.True(t, CanTransition(StatusPending, StatusTransferred))
	assert.True(t, CanTransition(StatusMatched, StatusReturned))
	assert.True(t, CanTransition(StatusMatched, StatusTransferred))

	assert.False(t, CanTransition(StatusPending, StatusReturned))
	assert.False(t, CanTransition(StatusMatched, StatusPending))
	assert.False(t, CanTransition(StatusReturned, StatusMatched))
	assert.False(t, CanTransition(StatusTransferred, StatusPending))
	assert.False(t, CanTransition(StatusPending, StatusPending))
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates([]float64{-71.0882, 42.3387}))
	assert.NoError(t, ValidateCoordinates([]float64{-180, -90}))
	assert.NoError(t, ValidateCoordinates([]float64{180, 90}))

	assert.Error(t, ValidateCoordinates([]float64{-71.0882}))
	assert.Error(t, ValidateCoordinates([]float64{-71.0882, 42.3387, 0}))
	assert.Error(t, ValidateCoordinates([]float64{-180.01, 0}))
	assert.Error(t, ValidateCoordinates([]float64{0, 90.01}))
}

func TestSyncCoordinates(t *testing.T) {
	lng, lat := -71.0882, 42.3387
	item := LostItem{Longitude: &lng, Latitude: &lat}
	item.SyncCoordinates()
	assert.Equal(t, []float64{-71.0882, 42.3387}, item.Coordinates)

	bare := LostItem{}
	bare.SyncCoordinates()
	assert.Nil(t, bare.Coordinates)
}
