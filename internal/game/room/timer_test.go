package room

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

func TestAdvanceTimer_StaleGenerationIsNoop(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()
	r.Phase = PhaseDiscuss
	r.generation = 7

	// A callback armed before the last phase change must not advance
	r.advanceTimerFired(6)
	assert.Equal(t, PhaseDiscuss, r.PhaseForTest())

	// The current generation does advance
	r.advanceTimerFired(7)
	assert.Equal(t, PhaseDay, r.PhaseForTest())
}

func TestAdvanceTimer_ManualAdvanceInvalidatesPending(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	demonID := startMatch(t, r)
	target := otherPlayer(r, demonID)

	r.mu.Lock()
	nightGen := r.generation
	r.mu.Unlock()

	// Demon acts before the night timer fires
	require.NoError(t, r.SubmitMove(demonID, &protocol.MovePayload{
		Action:   protocol.ActionPossess,
		TargetID: target,
	}))
	require.Equal(t, PhaseDiscuss, r.PhaseForTest())

	// The night timer's callback now carries a stale generation
	r.advanceTimerFired(nightGen)
	assert.Equal(t, PhaseDiscuss, r.PhaseForTest())
}

func TestRoundTimer_ForcesDisplayMidAdjudication(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 2
	r.refillResources()
	r.possessed = map[string]bool{"p2": true}
	r.Phase = PhaseVoting
	r.CurrentMove = &Move{Tool: ToolBoard, ActorID: "p0", Seconded: true}
	r.votes = map[string]bool{"p0": true}

	r.roundTimerFired(2)

	assert.Equal(t, PhaseDisplay, r.PhaseForTest())
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Nil(t, r.CurrentMove)
}

func TestRoundTimer_ArmedAtDayEntryNotNight(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	demonID := startMatch(t, r)

	// Night runs outside the ceiling: a ceiling shorter than the night
	// timeout must not expire before the day cycle even starts
	r.mu.Lock()
	_, armed := r.Deadlines[TimerRound]
	r.mu.Unlock()
	assert.False(t, armed)

	require.NoError(t, r.SubmitMove(demonID, &protocol.MovePayload{
		Action:   protocol.ActionPossess,
		TargetID: otherPlayer(r, demonID),
	}))
	require.Equal(t, PhaseDiscuss, r.PhaseForTest())
	r.mu.Lock()
	_, armed = r.Deadlines[TimerRound]
	r.mu.Unlock()
	assert.False(t, armed)

	// The ceiling starts ticking when the day cycle does
	r.AdvanceForTest()
	require.Equal(t, PhaseDay, r.PhaseForTest())
	r.mu.Lock()
	_, armed = r.Deadlines[TimerRound]
	timer := r.roundTimer
	r.mu.Unlock()
	assert.True(t, armed)
	assert.NotNil(t, timer)
}

func TestRoundTimer_ClearedAtDisplay(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()

	r.mu.Lock()
	r.armRoundTimer()
	r.enterDisplay()
	_, armed := r.Deadlines[TimerRound]
	r.mu.Unlock()

	assert.False(t, armed)
	assert.Equal(t, PhaseDisplay, r.PhaseForTest())
}

func TestRoundTimer_StaleRoundIsNoop(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 3
	r.Phase = PhaseDay

	r.roundTimerFired(2)
	assert.Equal(t, PhaseDay, r.PhaseForTest())
}

func TestRoundTimer_OutsideDayCycleIsNoop(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 2
	r.Phase = PhaseNight

	r.roundTimerFired(2)
	assert.Equal(t, PhaseNight, r.PhaseForTest())
}

func TestRoundTimer_RacesMoveIntoSingleAdvance(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 2
	r.refillResources()
	r.possessed = map[string]bool{"p2": true}
	r.Phase = PhaseDay
	r.Turn = nil
	r.Settings.TurnOrder = false
	// Everyone but p4 has moved: the last pass resolves the day
	for _, id := range []string{"p0", "p2", "p3"} {
		r.Players[id].Moved = true
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.roundTimerFired(2)
	}()
	go func() {
		defer wg.Done()
		_ = r.SubmitMove("p4", &protocol.MovePayload{Action: protocol.ActionPass})
	}()
	wg.Wait()

	// Whichever side won the race, the room lands in DISPLAY exactly once
	assert.Equal(t, PhaseDisplay, r.PhaseForTest())
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Equal(t, 2, r.Round)
}

func TestArmAdvanceTimer_SupersedesPrevious(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(4)
	r.mu.Lock()
	r.armAdvanceTimer(60)
	first := r.advanceTimer
	r.armAdvanceTimer(60)
	second := r.advanceTimer
	r.mu.Unlock()

	assert.NotNil(t, second)
	assert.NotSame(t, first, second)

	r.mu.Lock()
	r.cancelAdvanceTimer()
	assert.Nil(t, r.advanceTimer)
	_, hasDeadline := r.Deadlines[TimerAdvance]
	assert.False(t, hasDeadline)
	r.mu.Unlock()
}
