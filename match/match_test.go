package match

import (
	"image/color"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/brawler/ai"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/fighter"
	"github.com/milk9111/brawler/prefabs"
)

const ms = time.Millisecond

var standStill = ai.PolicyFunc(func(ai.Situation, ai.Profile, float64) ai.Behavior { return ai.Idle })

func testBundle(t *testing.T) *prefabs.Bundle {
	t.Helper()
	b, err := prefabs.LoadBundle()
	require.NoError(t, err)
	return b
}

func newMatch(t *testing.T, mutate func(*Options)) *Match {
	t.Helper()
	opts := Options{
		Setup:  Setup{Character: "Player1", Element: "water", Difficulty: ai.Hard},
		Bundle: testBundle(t),
		Seed:   7,
		Policy: standStill,
	}
	if mutate != nil {
		mutate(&opts)
	}
	m, err := New(opts)
	require.NoError(t, err)
	return m
}

// runFor ticks with no input until d of match time has passed.
func runFor(m *Match, d time.Duration) {
	end := m.Clock().Now() + d
	for m.Clock().Now() < end {
		m.Update(PlayerInput{})
	}
}

func TestSetupValidate(t *testing.T) {
	roster := testBundle(t).Roster
	cases := []struct {
		name  string
		setup Setup
		err   error
	}{
		{"ok", Setup{Character: "Player2", Element: "fire"}, nil},
		{"default character", Setup{Element: "Water"}, nil},
		{"no element", Setup{Character: "Player1"}, ErrNoElement},
		{"unknown character", Setup{Character: "Player9", Element: "fire"}, ErrUnknownCharacter},
		{"unknown element", Setup{Character: "Player1", Element: "earth"}, ErrUnknownElement},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.setup.Validate(roster)
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
	assert.Equal(t, "Please select an element first!", ErrNoElement.Error())
}

func TestPickOpponentTakesAnotherCharacterAndOppositeElement(t *testing.T) {
	roster := testBundle(t).Roster
	seen := map[string]bool{}
	for seed := uint64(1); seed <= 50; seed++ {
		opp, err := PickOpponent(roster, Setup{Character: "Player2", Element: "fire"}, ai.NewSource(seed))
		require.NoError(t, err)
		assert.NotEqual(t, "Player2", opp.Character)
		assert.Equal(t, "water", opp.Element)
		seen[opp.Character] = true
	}
	assert.Equal(t, map[string]bool{"Player1": true, "Player3": true}, seen)
}

func TestNewRejectsBadSetup(t *testing.T) {
	_, err := New(Options{Setup: Setup{Character: "Player1"}, Bundle: testBundle(t)})
	assert.ErrorIs(t, err, ErrNoElement)

	_, err = New(Options{Setup: Setup{Element: "fire"}})
	assert.ErrorIs(t, err, ErrNoBundle)
}

func TestNewMatchStartsFighting(t *testing.T) {
	m := newMatch(t, nil)
	s := m.State()
	assert.Equal(t, PhaseFighting, s.Phase)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 99, s.Timer)
	assert.NotEqual(t, uuid.Nil, s.ID)

	px, py := m.Player().Position()
	ex, _ := m.Enemy().Position()
	assert.Equal(t, SpawnPlayerX, px)
	assert.Equal(t, SpawnY, py)
	assert.Equal(t, SpawnEnemyX, ex)
	assert.Equal(t, "water", m.Player().Element())
	assert.Equal(t, "fire", m.Enemy().Element())
	assert.NotEqual(t, m.Player().Character(), m.Enemy().Character())
}

func TestKickLandsAndEnemyRecovers(t *testing.T) {
	m := newMatch(t, nil)
	runFor(m, 500*ms)
	require.True(t, m.Player().Grounded())
	_, y := m.Player().Position()
	m.Player().Body().SetPosition(540, y)

	m.Update(PlayerInput{Pressed: []fighter.Action{fighter.ActionKick}})
	assert.Equal(t, fighter.Kick, m.Player().State())
	assert.Equal(t, 100, m.Enemy().Health())

	runFor(m, 210*ms)
	assert.Equal(t, 85, m.Enemy().Health())
	assert.Equal(t, fighter.Hurt, m.Enemy().State())

	events := m.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventHit, events[0].Type)
	hit, ok := events[0].Data.(combat.Hit)
	require.True(t, ok)
	assert.Same(t, m.Enemy(), hit.Target)
	assert.Equal(t, 15, hit.Damage.Applied)
	assert.Empty(t, m.Events())

	tint, ok := ecs.Get(m.World(), ecs.Entity(m.Enemy().Entity()), component.TintComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, fighter.TintHit, tint.Color)
	_, shaking := m.Shake()
	assert.True(t, shaking)

	runFor(m, time.Second)
	assert.Equal(t, fighter.Idle, m.Enemy().State())
	ex, _ := m.Enemy().Position()
	assert.Greater(t, ex, SpawnEnemyX, "knocked back away from the kicker")
	assert.False(t, ecs.Has(m.World(), ecs.Entity(m.Enemy().Entity()), component.TintComponent.Kind()))
}

func TestHeldBlockReducesDamage(t *testing.T) {
	m := newMatch(t, nil)
	runFor(m, 500*ms)

	m.Update(PlayerInput{Block: true})
	require.Equal(t, fighter.Shield, m.Player().State())
	dmg := m.Player().TakeDamage(15)
	assert.True(t, dmg.Blocked)
	assert.Equal(t, 2, dmg.Applied)
	assert.Equal(t, fighter.Shield, m.Player().State())

	m.Update(PlayerInput{})
	assert.NotEqual(t, fighter.Shield, m.Player().State())
}

func TestRoundOutcome(t *testing.T) {
	cases := []struct {
		name string
		kill func(m *Match)
		want Outcome
	}{
		{"enemy dies", func(m *Match) { m.Enemy().TakeDamage(LethalDamage) }, OutcomeWon},
		{"player dies", func(m *Match) { m.Player().TakeDamage(LethalDamage) }, OutcomeLost},
		{"both die together", func(m *Match) {
			m.Player().TakeDamage(LethalDamage)
			m.Enemy().TakeDamage(LethalDamage)
		}, OutcomeDraw},
		{"second death inside the delay", func(m *Match) {
			m.Player().TakeDamage(LethalDamage)
			runFor(m, time.Second)
			m.Enemy().TakeDamage(LethalDamage)
		}, OutcomeDraw},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newMatch(t, nil)
			runFor(m, 100*ms)
			tc.kill(m)

			runFor(m, 2200*ms)
			s := m.State()
			assert.Equal(t, PhaseOver, s.Phase)
			assert.Equal(t, tc.want, s.Outcome)
			assert.Equal(t, string(tc.want), s.Banner)
		})
	}
}

func TestResolutionWaitsForDeathDelay(t *testing.T) {
	m := newMatch(t, nil)
	m.Enemy().TakeDamage(LethalDamage)
	runFor(m, 1900*ms)
	assert.Equal(t, PhaseFighting, m.State().Phase)
	assert.Equal(t, OutcomeNone, m.State().Outcome)

	runFor(m, 200*ms)
	assert.Equal(t, PhaseOver, m.State().Phase)
}

func TestLateSecondDeathDoesNotFlipOutcome(t *testing.T) {
	m := newMatch(t, nil)
	m.Enemy().TakeDamage(LethalDamage)
	runFor(m, 2100*ms)
	require.Equal(t, OutcomeWon, m.State().Outcome)

	m.Player().TakeDamage(LethalDamage)
	runFor(m, 2100*ms)
	assert.Equal(t, OutcomeWon, m.State().Outcome)
}

func TestTimerCountsWhileBothLive(t *testing.T) {
	m := newMatch(t, nil)
	runFor(m, 2100*ms)
	assert.Equal(t, 97, m.State().Timer)

	m.Enemy().TakeDamage(LethalDamage)
	runFor(m, 1500*ms)
	assert.Equal(t, 97, m.State().Timer)
}

func TestTimeUp(t *testing.T) {
	cases := []struct {
		name        string
		hurtPlayer  int
		hurtEnemy   int
		playerDead  bool
		enemyDead   bool
		wantOutcome Outcome
	}{
		{"enemy lower", 0, 10, false, true, OutcomeWon},
		{"player lower", 25, 10, true, false, OutcomeLost},
		{"tied", 10, 10, true, true, OutcomeDraw},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newMatch(t, func(o *Options) { o.Duration = 2 * time.Second })
			if tc.hurtPlayer > 0 {
				m.Player().TakeDamage(tc.hurtPlayer)
			}
			if tc.hurtEnemy > 0 {
				m.Enemy().TakeDamage(tc.hurtEnemy)
			}

			runFor(m, 2100*ms)
			assert.Equal(t, 0, m.State().Timer)
			assert.Equal(t, tc.playerDead, m.Player().IsDead())
			assert.Equal(t, tc.enemyDead, m.Enemy().IsDead())

			runFor(m, 2100*ms)
			assert.Equal(t, tc.wantOutcome, m.State().Outcome)
		})
	}
}

func TestFallingOutOfTheArenaKills(t *testing.T) {
	m := newMatch(t, nil)
	m.Player().Body().SetPosition(SpawnPlayerX, OutOfBoundsY+50)
	m.Update(PlayerInput{})
	assert.True(t, m.Player().IsDead())
	assert.Equal(t, 0, m.Player().Health())
}

func TestPauseFreezesTheClock(t *testing.T) {
	m := newMatch(t, nil)
	m.Update(PlayerInput{})
	before := m.Clock().Now()
	px, py := m.Player().Position()

	assert.True(t, m.TogglePause())
	for i := 0; i < 10; i++ {
		m.Update(PlayerInput{Right: true})
	}
	assert.Equal(t, before, m.Clock().Now())
	x, y := m.Player().Position()
	assert.Equal(t, px, x)
	assert.Equal(t, py, y)

	assert.False(t, m.TogglePause())
	m.Update(PlayerInput{})
	assert.Greater(t, m.Clock().Now(), before)
}

func TestMultiRoundIntroAndReset(t *testing.T) {
	m := newMatch(t, func(o *Options) { o.RoundsToWin = 2 })
	s := m.State()
	assert.Equal(t, PhaseIntro, s.Phase)
	assert.Equal(t, "ROUND 1", s.Banner)

	m.Update(PlayerInput{Pressed: []fighter.Action{fighter.ActionPunch}})
	assert.Equal(t, fighter.Idle, m.Player().State(), "input is ignored during the intro")

	runFor(m, 1500*ms)
	assert.Equal(t, "FIGHT!", m.State().Banner)
	runFor(m, 800*ms)
	require.Equal(t, PhaseFighting, m.State().Phase)
	assert.Empty(t, m.State().Banner)

	m.Enemy().TakeDamage(LethalDamage)
	runFor(m, 2100*ms)
	s = m.State()
	assert.Equal(t, PhaseIntro, s.Phase)
	assert.Equal(t, [2]int{1, 0}, s.Wins)
	assert.Equal(t, OutcomeWon, s.RoundOutcome)
	assert.Equal(t, OutcomeNone, s.Outcome)

	runFor(m, 1500*ms)
	s = m.State()
	assert.Equal(t, 2, s.Round)
	assert.Equal(t, "ROUND 2", s.Banner)
	assert.False(t, m.Enemy().IsDead())
	assert.Equal(t, 100, m.Enemy().Health())

	runFor(m, 2300*ms)
	require.Equal(t, PhaseFighting, m.State().Phase)
	m.Enemy().TakeDamage(LethalDamage)
	runFor(m, 2100*ms)
	s = m.State()
	assert.Equal(t, PhaseOver, s.Phase)
	assert.Equal(t, OutcomeWon, s.Outcome)
	assert.Equal(t, [2]int{2, 0}, s.Wins)
}

func TestRestart(t *testing.T) {
	m := newMatch(t, nil)
	m.Player().TakeDamage(LethalDamage)
	runFor(m, 2100*ms)
	require.True(t, m.State().Over())
	id := m.State().ID

	m.Restart()
	s := m.State()
	assert.Equal(t, PhaseFighting, s.Phase)
	assert.Equal(t, 99, s.Timer)
	assert.NotEqual(t, id, s.ID)
	assert.Equal(t, 100, m.Player().Health())
	assert.False(t, m.Player().IsDead())
	assert.Equal(t, time.Duration(0), m.Clock().Now())
}

func TestHealthColor(t *testing.T) {
	cases := []struct {
		pct  float64
		want color.RGBA
	}{
		{100, color.RGBA{R: 0, G: 255, A: 255}},
		{75, color.RGBA{R: 127, G: 255, A: 255}},
		{50, color.RGBA{R: 255, G: 255, A: 255}},
		{25, color.RGBA{R: 255, G: 127, A: 255}},
		{0, color.RGBA{R: 255, G: 0, A: 255}},
		{-5, color.RGBA{R: 255, G: 0, A: 255}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HealthColor(tc.pct), "pct %v", tc.pct)
	}
}

func TestHUD(t *testing.T) {
	m := newMatch(t, nil)
	m.Update(PlayerInput{})
	h := m.HUD()

	assert.Equal(t, 99, h.Timer)
	p := h.Fighters[SlotPlayer]
	assert.Equal(t, "FIGHTER", p.Label)
	assert.Equal(t, "ELEMENT: WATER", p.Element)
	assert.Equal(t, 100.0, p.Health)
	assert.False(t, p.StaminaShown)
	require.Len(t, p.Cooldowns, 3)
	for _, cd := range p.Cooldowns {
		assert.True(t, cd.Ready, cd.Power)
	}
	assert.Contains(t, h.Fighters[SlotEnemy].Label, "(HARD)")
	assert.Equal(t, "ELEMENT: FIRE", h.Fighters[SlotEnemy].Element)

	m.Update(PlayerInput{Pressed: []fighter.Action{fighter.ActionBall}})
	h = m.HUD()
	assert.False(t, h.Fighters[SlotPlayer].Cooldowns[0].Ready)
	assert.True(t, h.Fighters[SlotPlayer].Cooldowns[1].Ready)
}

func TestCastSpawnsProjectileEntity(t *testing.T) {
	m := newMatch(t, nil)
	runFor(m, 300*ms)
	m.Update(PlayerInput{Pressed: []fighter.Action{fighter.ActionArrow}})
	assert.Equal(t, 0, m.Projectiles().Count())

	runFor(m, 200*ms)
	assert.Equal(t, 1, m.Projectiles().Count())

	runFor(m, 3500*ms)
	assert.Equal(t, 0, m.Projectiles().Count())
}

func TestMatchLogsCarryMatchID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := newMatch(t, func(o *Options) { o.Logger = zap.New(core) })
	m.Enemy().TakeDamage(LethalDamage)
	runFor(m, 2100*ms)
	require.True(t, m.State().Over())

	over := logs.FilterMessage("match over").All()
	require.Len(t, over, 1)
	fields := over[0].ContextMap()
	assert.Equal(t, m.State().ID.String(), fields["match_id"])
	assert.Equal(t, string(OutcomeWon), fields["outcome"])
}

func TestRestartRetagsEveryLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := newMatch(t, func(o *Options) { o.Logger = zap.New(core) })
	first := m.State().ID

	m.Restart()
	require.NotEqual(t, first, m.State().ID)
	logs.TakeAll()

	m.Enemy().TakeDamage(10)
	damage := logs.FilterMessage("damage").All()
	require.Len(t, damage, 1)
	fields := damage[0].ContextMap()
	assert.Equal(t, m.State().ID.String(), fields["match_id"])
	assert.Equal(t, "enemy", fields["fighter"])
}

func TestEffectFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := newMatch(t, func(o *Options) { o.Logger = zap.New(core) })

	require.True(t, ecs.DestroyEntity(m.World(), m.fx.camera))
	m.fx.Shake(100*ms, 0.008)
	_, shaking := m.Shake()
	assert.False(t, shaking)
	assert.Equal(t, 1, logs.FilterMessage("camera shake").Len())

	require.True(t, ecs.DestroyEntity(m.World(), ecs.Entity(m.Enemy().Entity())))
	m.fx.Tint(m.Enemy(), fighter.TintHit, 150*ms)
	assert.Equal(t, 1, logs.FilterMessage("tint").Len())
}
