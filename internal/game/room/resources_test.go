package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefillResources_FirstRound(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Round = 1
	r.refillResources()

	// Round 1: holy water starts empty, everything else gets its allotment
	assert.Equal(t, 1, r.Resources[ToolBoard])
	assert.Equal(t, 0, r.Resources[ToolWater])
	assert.Equal(t, 1, r.Resources[ToolRod])
	assert.Equal(t, 1, r.Resources[ToolExorcism])
	assert.Equal(t, 1, r.Resources[ToolSalt])
}

func TestRefillResources_WaterAccumulates(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Round = 1
	r.refillResources()

	// After round 1 the unspent water carries into round 2 plus one
	r.Round = 2
	r.refillResources()
	assert.Equal(t, 1, r.Resources[ToolWater])

	// Accumulation is capped by room size: 5 players → cap 2
	r.Round = 3
	r.refillResources()
	assert.Equal(t, 2, r.Resources[ToolWater])

	r.Round = 4
	r.refillResources()
	assert.Equal(t, 2, r.Resources[ToolWater])
}

func TestRefillResources_SpentWaterResetsAccumulation(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Round = 2
	r.Resources[ToolWater] = 0 // spent everything last round
	r.refillResources()
	assert.Equal(t, 1, r.Resources[ToolWater])
}

func TestRefillResources_DisabledTool(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Settings.Tools[ToolSalt] = false
	r.Round = 2
	r.refillResources()

	assert.Equal(t, 0, r.Resources[ToolSalt])
	assert.Equal(t, 1, r.Resources[ToolBoard])
}

func TestChargeReplenish(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.initCharges()
	assert.Equal(t, 1, r.charges[ToolBoard])
	assert.Equal(t, 1, r.charges[ToolRod])

	// Holy water refills the board pool, exorcism refills the rod pool
	r.replenishCharge(ToolWater)
	r.replenishCharge(ToolExorcism)
	assert.Equal(t, 2, r.charges[ToolBoard])
	assert.Equal(t, 2, r.charges[ToolRod])

	// Non-countermeasure tools never replenish
	r.replenishCharge(ToolBoard)
	r.replenishCharge(ToolSalt)
	assert.Equal(t, 2, r.charges[ToolBoard])
	assert.Equal(t, 2, r.charges[ToolRod])
}

func TestDayResolved(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(4)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()

	assert.False(t, r.dayResolved())

	// All eligible players moved
	for _, p := range r.Players {
		if p.eligible() {
			p.Moved = true
		}
	}
	assert.True(t, r.dayResolved())

	// Unmoved players but no resources left
	for _, p := range r.Players {
		p.Moved = false
	}
	for _, tool := range AllTools {
		r.Resources[tool] = 0
	}
	assert.True(t, r.dayResolved())
}
