package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/hunt-the-demon/internal/apperrors"
	"github.com/palemoky/hunt-the-demon/internal/protocol"
)

func TestSubmitMove_UnknownPlayer(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(4)
	err := r.SubmitMove("ghost", &protocol.MovePayload{Action: protocol.ActionStart})
	assert.ErrorIs(t, err, apperrors.ErrNotInRoom)
}

func TestStart_NonOwnerRejected(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	err := r.SubmitMove("p1", &protocol.MovePayload{Action: protocol.ActionStart})
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	assert.Equal(t, PhaseLobby, r.PhaseForTest())
}

func TestFinish_OwnerDemonRetainsAuthority(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p0"].IsDemon = true
	r.Phase = PhaseEnd

	// Being the demon does not void owner authority over the room
	require.NoError(t, r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionFinish}))
	assert.Equal(t, PhaseLobby, r.PhaseForTest())
}

func TestFinish_NonOwnerDemonRejected(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Phase = PhaseEnd

	err := r.SubmitMove("p1", &protocol.MovePayload{Action: protocol.ActionFinish})
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	assert.Equal(t, PhaseEnd, r.PhaseForTest())
}

func TestMove_WrongPhaseSilentlyDropped(t *testing.T) {
	t.Parallel()

	r, clients := NewTestRoom(5)
	before := len(clients[1].Messages)

	// A day move in the lobby is a silent no-op: no error, no mutation,
	// no broadcast
	err := r.SubmitMove("p1", &protocol.MovePayload{Action: protocol.ActionPass})
	assert.NoError(t, err)
	assert.Equal(t, PhaseLobby, r.PhaseForTest())
	assert.Len(t, clients[1].Messages, before)
}

func TestPossess_InvalidTargets(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	demonID := startMatch(t, r)

	r.mu.Lock()
	var warded, purified, possessed string
	for _, id := range r.PlayerOrder {
		if id == demonID {
			continue
		}
		switch {
		case warded == "":
			warded = id
			r.Players[id].IsWarded = true
		case purified == "":
			purified = id
			r.Players[id].IsPurified = true
		case possessed == "":
			possessed = id
			r.possessed[id] = true
		}
	}
	r.mu.Unlock()

	for _, target := range []string{demonID, warded, purified, possessed, "ghost"} {
		err := r.SubmitMove(demonID, &protocol.MovePayload{
			Action:   protocol.ActionPossess,
			TargetID: target,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTarget, "target %s", target)
	}
	assert.Equal(t, PhaseNight, r.PhaseForTest())
}

func TestPossess_FreedLastRoundProtected(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	demonID := startMatch(t, r)
	target := otherPlayer(r, demonID)

	r.mu.Lock()
	r.freedThisRound[target] = true
	r.mu.Unlock()

	err := r.SubmitMove(demonID, &protocol.MovePayload{Action: protocol.ActionPossess, TargetID: target})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTarget)
}

func TestUseTool_Preconditions(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()
	r.Phase = PhaseDay
	r.Turn = nil
	r.Settings.TurnOrder = false

	// Exhausted resource
	r.Resources[ToolBoard] = 0
	err := r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionUseTool, Tool: string(ToolBoard)})
	assert.ErrorIs(t, err, apperrors.ErrNoResource)

	// Disabled tool
	r.Settings.Tools[ToolSalt] = false
	err = r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionUseTool, Tool: string(ToolSalt)})
	assert.ErrorIs(t, err, apperrors.ErrNoResource)

	// Already moved this round
	r.Players["p0"].Moved = true
	err = r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionUseTool, Tool: string(ToolRod)})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMoved)
}

func TestUseTool_TurnOrderEnforced(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()
	r.Phase = PhaseDay
	r.Turn = &TurnState{Current: 0, Start: 0}

	err := r.SubmitMove("p2", &protocol.MovePayload{Action: protocol.ActionUseTool, Tool: string(ToolBoard)})
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	require.NoError(t, r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionUseTool, Tool: string(ToolBoard)}))
	assert.Equal(t, PhaseSeconding, r.PhaseForTest())
}

func TestPass_FreeForAllAdvancesWhenAllMoved(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()
	r.Phase = PhaseDay
	r.Turn = nil
	r.Settings.TurnOrder = false

	for _, id := range []string{"p0", "p2", "p3"} {
		require.NoError(t, r.SubmitMove(id, &protocol.MovePayload{Action: protocol.ActionPass}))
		assert.Equal(t, PhaseDay, r.PhaseForTest())
	}

	// The last eligible pass closes the day
	require.NoError(t, r.SubmitMove("p4", &protocol.MovePayload{Action: protocol.ActionPass}))
	assert.Equal(t, PhaseDisplay, r.PhaseForTest())
}

func TestSecond_ProposerCannotSecondOwnMove(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Phase = PhaseSeconding
	r.CurrentMove = &Move{Tool: ToolBoard, ActorID: "p0"}

	err := r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionSecond})
	assert.ErrorIs(t, err, apperrors.ErrNotEligible)

	require.NoError(t, r.SubmitMove("p2", &protocol.MovePayload{Action: protocol.ActionSecond}))
	assert.Equal(t, PhaseVoting, r.PhaseForTest())
	assert.Equal(t, "p2", r.CurrentMove.SeconderID)
}

func TestVote_ExorcisedExcludedFromQuorum(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Players["p2"].IsExorcised = true
	r.Round = 1
	r.refillResources()
	r.Phase = PhaseVoting
	r.CurrentMove = &Move{Tool: ToolBoard, ActorID: "p0", Seconded: true}
	r.votes = make(map[string]bool)

	// Exorcised players never vote
	err := r.SubmitMove("p2", &protocol.MovePayload{Action: protocol.ActionVote, Vote: boolPtr(true)})
	assert.ErrorIs(t, err, apperrors.ErrNotEligible)

	// Only the three eligible voters are needed to settle the vote
	require.NoError(t, r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionVote, Vote: boolPtr(true)}))
	require.NoError(t, r.SubmitMove("p3", &protocol.MovePayload{Action: protocol.ActionVote, Vote: boolPtr(false)}))
	assert.Equal(t, PhaseVoting, r.PhaseForTest())
	require.NoError(t, r.SubmitMove("p4", &protocol.MovePayload{Action: protocol.ActionVote, Vote: boolPtr(true)}))
	assert.Equal(t, PhaseSelect, r.PhaseForTest())
}

func TestVote_DoubleVoteRejected(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Phase = PhaseVoting
	r.CurrentMove = &Move{Tool: ToolBoard, ActorID: "p0", Seconded: true}
	r.votes = make(map[string]bool)

	require.NoError(t, r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionVote, Vote: boolPtr(true)}))
	err := r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionVote, Vote: boolPtr(false)})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMoved)
}

func TestSelect_SelfTargetForbidden(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Phase = PhaseSelect
	r.CurrentMove = &Move{Tool: ToolBoard, ActorID: "p0"}

	err := r.SubmitMove("p0", &protocol.MovePayload{Action: protocol.ActionSelect, TargetID: "p0"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTarget)
	assert.Equal(t, PhaseSelect, r.PhaseForTest())
}

func TestSelect_OnlyProposerMayChoose(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Phase = PhaseSelect
	r.CurrentMove = &Move{Tool: ToolBoard, ActorID: "p0"}

	// Another player trying to pick a target is silently ignored
	err := r.SubmitMove("p2", &protocol.MovePayload{Action: protocol.ActionSelect, TargetID: "p3"})
	assert.NoError(t, err)
	assert.Equal(t, PhaseSelect, r.PhaseForTest())
	assert.False(t, r.CurrentMove.Selected)
}

func TestSaltLine_WardsArc(t *testing.T) {
	t.Parallel()

	r, _ := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()
	r.Phase = PhaseSelect
	r.Turn = nil
	r.Settings.TurnOrder = false
	r.CurrentMove = &Move{Tool: ToolSalt, ActorID: "p0"}
	r.Players["p0"].Moved = true

	start, end := 1, 0
	require.NoError(t, r.SubmitMove("p0", &protocol.MovePayload{
		Action:    protocol.ActionSelect,
		LineStart: &start,
		LineEnd:   &end,
	}))
	assert.Equal(t, PhaseDisplay, r.PhaseForTest())

	r.mu.Lock()
	defer r.mu.Unlock()
	// The arc covers seats 1..4, but seat 1 is the demon and is never warded
	assert.True(t, r.Players["p2"].IsWarded)
	assert.True(t, r.Players["p3"].IsWarded)
	assert.True(t, r.Players["p4"].IsWarded)
	assert.False(t, r.Players["p0"].IsWarded)
	assert.False(t, r.Players["p1"].IsWarded)
}

func TestExorcism_FreesAndRemovesFromQuorum(t *testing.T) {
	t.Parallel()

	r, clients := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()
	r.initCharges()
	r.demonHistory = map[string][]protocol.ChatPayload{"p3": {{Content: "hi"}}}
	r.possessed = map[string]bool{"p3": true}
	r.Phase = PhaseSelect
	r.Turn = nil
	r.Settings.TurnOrder = false
	r.CurrentMove = &Move{Tool: ToolExorcism, ActorID: "p0"}
	r.Players["p0"].Moved = true

	require.NoError(t, r.SubmitMove("p0", &protocol.MovePayload{
		Action:   protocol.ActionSelect,
		TargetID: "p3",
	}))
	assert.Equal(t, PhaseDisplay, r.PhaseForTest())

	// The bound player is told personally
	popups := clients[3].MessagesOfType(protocol.MsgPopup)
	require.NotEmpty(t, popups)
	popup, err := protocol.ParsePayload[protocol.PopupPayload](popups[len(popups)-1])
	require.NoError(t, err)
	assert.Contains(t, popup.Text, "驱魔")

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.True(t, r.Players["p3"].IsExorcised)
	assert.False(t, r.possessed["p3"])
	assert.True(t, r.freedThisRound["p3"])
	// Private channel history is discarded on freeing
	assert.NotContains(t, r.demonHistory, "p3")
	// Exorcism refills the rod interference pool
	assert.Equal(t, 2, r.charges[ToolRod])
	assert.Equal(t, 3, r.eligibleCount())
}

func TestWater_FreesSilentlyAndPurifies(t *testing.T) {
	t.Parallel()

	r, clients := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 2
	r.refillResources()
	r.initCharges()
	r.possessed = map[string]bool{"p3": true}
	r.demonHistory = map[string][]protocol.ChatPayload{"p3": nil}
	r.Phase = PhaseSelect
	r.Turn = nil
	r.Settings.TurnOrder = false
	r.CurrentMove = &Move{Tool: ToolWater, ActorID: "p0"}
	r.Players["p0"].Moved = true

	require.NoError(t, r.SubmitMove("p0", &protocol.MovePayload{
		Action:   protocol.ActionSelect,
		TargetID: "p3",
	}))

	r.mu.Lock()
	assert.False(t, r.possessed["p3"])
	assert.True(t, r.Players["p3"].IsPurified)
	assert.Equal(t, 2, r.charges[ToolBoard])
	r.mu.Unlock()

	// The public result says "purified" but never whether the target was
	// actually possessed
	results := clients[0].MessagesOfType(protocol.MsgToolResult)
	require.NotEmpty(t, results)
	payload, err := protocol.ParsePayload[protocol.ToolResultPayload](results[len(results)-1])
	require.NoError(t, err)
	assert.True(t, payload.Purified)
	assert.Nil(t, payload.Possessed)
	assert.False(t, payload.Freed)
}

func TestInterpret_ReportIsFreeform(t *testing.T) {
	t.Parallel()

	r, clients := NewTestRoom(5)
	r.Players["p1"].IsDemon = true
	r.Round = 1
	r.refillResources()
	r.possessed = map[string]bool{"p3": true}
	r.Phase = PhaseInterpret
	r.Turn = nil
	r.Settings.TurnOrder = false
	r.CurrentMove = &Move{Tool: ToolRod, ActorID: "p0", TargetID: "p3", Selected: true}
	r.Players["p0"].Moved = true
	r.shownResult = true

	// The actor may lie: reporting "clear" on a possessed target is legal
	require.NoError(t, r.SubmitMove("p0", &protocol.MovePayload{
		Action: protocol.ActionReport,
		Report: protocol.ReportClear,
	}))
	assert.Equal(t, PhaseDisplay, r.PhaseForTest())

	results := clients[2].MessagesOfType(protocol.MsgToolResult)
	require.NotEmpty(t, results)
	payload, err := protocol.ParsePayload[protocol.ToolResultPayload](results[len(results)-1])
	require.NoError(t, err)
	assert.Equal(t, protocol.ReportClear, payload.Report)
	// The broadcast never carries the true result
	assert.Nil(t, payload.Possessed)
}
