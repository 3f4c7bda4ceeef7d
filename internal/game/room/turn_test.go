package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMod(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, mod(0, 5))
	assert.Equal(t, 2, mod(7, 5))
	assert.Equal(t, 4, mod(-1, 5))
	assert.Equal(t, 3, mod(-7, 5))
}

func TestNextEligibleFrom(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Players["p2"].IsExorcised = true

	// Starting from the demon's seat, the next eligible seat is found clockwise
	assert.Equal(t, 3, r.nextEligibleFrom(1))
	assert.Equal(t, 0, r.nextEligibleFrom(0))
	// Wraps around the end of the table
	assert.Equal(t, 0, r.nextEligibleFrom(5))
}

func TestRotationSkipsDemonAndExorcised(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Players["p2"].IsExorcised = true

	start := r.nextEligibleFrom(0)
	r.Turn = &TurnState{Current: start, Start: start}

	// Walk the full rotation and record visited seats
	visited := []int{start}
	for {
		done := r.rotateTurn()
		if done {
			break
		}
		visited = append(visited, r.Turn.Current)
	}

	// A full cycle visits exactly the eligible players, never the demon
	// or the exorcised player
	assert.Equal(t, []int{0, 3, 4}, visited)
	assert.Len(t, visited, r.eligibleCount())
}

func TestRotationAllIneligible(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(3)
	for _, p := range r.Players {
		p.IsExorcised = true
	}
	assert.Equal(t, -1, r.nextEligibleFrom(0))
}
