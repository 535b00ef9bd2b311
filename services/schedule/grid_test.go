package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGrid(t *testing.T) {
	grid := BuildGrid(OperatingHours{Open: 9, Close: 13})
	assert.Equal(t, []int{9, 10, 11, 12}, grid)
}

func TestBuildGrid_SingleHour(t *testing.T) {
	grid := BuildGrid(OperatingHours{Open: 9, Close: 10})
	assert.Equal(t, []int{9}, grid)
}

func TestBuildGrid_EmptyOrInvertedWindow(t *testing.T) {
	assert.Nil(t, BuildGrid(OperatingHours{Open: 9, Close: 9}))
	assert.Nil(t, BuildGrid(OperatingHours{Open: 21, Close: 9}))
	assert.Nil(t, BuildGrid(OperatingHours{}))
}
