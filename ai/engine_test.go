package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/brawler/anim"
	"github.com/milk9111/brawler/clock"
	"github.com/milk9111/brawler/fighter"
)

const ms = time.Millisecond

type fakeBody struct {
	x, y, vx, vy, ax float64
}

func (b *fakeBody) Position() (float64, float64)    { return b.x, b.y }
func (b *fakeBody) SetPosition(x, y float64)        { b.x, b.y = x, y }
func (b *fakeBody) Velocity() (float64, float64)    { return b.vx, b.vy }
func (b *fakeBody) SetVelocity(vx, vy float64)      { b.vx, b.vy = vx, vy }
func (b *fakeBody) SetVelocityX(vx float64)         { b.vx = vx }
func (b *fakeBody) SetVelocityY(vy float64)         { b.vy = vy }
func (b *fakeBody) SetAccelerationX(ax float64)     { b.ax = ax }
func (b *fakeBody) SetMaxVelocity(float64, float64) {}
func (b *fakeBody) Extents() (float64, float64)     { return 20, 45 }
func (b *fakeBody) Grounded() bool                  { return true }

// fixedSource replays scripted rolls and repeats the last one when it runs
// out.
type fixedSource struct {
	floats []float64
	ints   []int
	drawn  int
}

func (s *fixedSource) Float64() float64 {
	s.drawn++
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

func (s *fixedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	return v % n
}

type attack struct {
	state  fighter.State
	damage int
}

type fakeArsenal struct {
	attacks []attack
	powers  []fighter.PowerID
}

func (a *fakeArsenal) PerformAttack(_, _ *fighter.Fighter, state fighter.State, damage int, _ time.Duration) bool {
	a.attacks = append(a.attacks, attack{state, damage})
	return true
}

func (a *fakeArsenal) UsePower(_ *fighter.Fighter, id fighter.PowerID, _ time.Duration) bool {
	a.powers = append(a.powers, id)
	return true
}

func testLibrary(t testing.TB) *anim.Library {
	t.Helper()
	var clips []*anim.Clip
	for _, s := range fighter.AllStates() {
		loop := s == fighter.Idle || s == fighter.Walk || s == fighter.Run
		c, err := anim.NewClip(s.String(), []anim.Keyframe{{Duration: 150 * ms}, {Duration: 150 * ms}}, anim.ClipOptions{Loop: loop})
		require.NoError(t, err)
		clips = append(clips, c)
	}
	lib, err := anim.NewLibrary(clips...)
	require.NoError(t, err)
	return lib
}

type bout struct {
	bot      *fighter.Fighter
	botBody  *fakeBody
	opponent *fighter.Fighter
	arsenal  *fakeArsenal
	src      *fixedSource
	engine   *Engine
}

func newBout(t *testing.T, opponentX float64, profile Profile, src *fixedSource) *bout {
	t.Helper()
	clk := clock.New()
	b := &bout{botBody: &fakeBody{}, arsenal: &fakeArsenal{}, src: src}
	b.bot = fighter.New(fighter.Config{Name: "enemy", SpawnX: 600, SpawnY: 505, Facing: -1, Entity: 2},
		fighter.Deps{Body: b.botBody, Animator: anim.NewAnimator(testLibrary(t)), Clock: clk}, fighter.DefaultStats())
	b.opponent = fighter.New(fighter.Config{Name: "player", SpawnX: opponentX, SpawnY: 505, Facing: 1, Entity: 1},
		fighter.Deps{Body: &fakeBody{}, Animator: anim.NewAnimator(testLibrary(t)), Clock: clk}, fighter.DefaultStats())
	b.engine = NewEngine(b.bot, b.opponent, b.arsenal, Options{Profile: profile, Source: src})
	return b
}

func withBlock(chance float64) Profile {
	p := Hard.Profile()
	p.BlockChance = chance
	return p
}

func TestBlockChanceAgainstNearbyAttack(t *testing.T) {
	cases := []struct {
		name   string
		chance float64
		want   Behavior
		state  fighter.State
	}{
		{"always blocks", 1.0, Blocking, fighter.Shield},
		{"never blocks", 0.0, Idle, fighter.Idle},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newBout(t, 540, withBlock(c.chance), &fixedSource{floats: []float64{0.5}})
			b.opponent.SetState(fighter.Punch, true)

			b.engine.Update(ms)

			assert.Equal(t, c.want, b.engine.Behavior())
			assert.Equal(t, c.state, b.bot.State())
			assert.Empty(t, b.arsenal.attacks)
		})
	}
}

func TestShieldDropsWhenBehaviorChanges(t *testing.T) {
	b := newBout(t, 540, withBlock(1), &fixedSource{floats: []float64{0.5}})
	b.opponent.SetState(fighter.Punch, true)
	b.engine.Update(ms)
	require.Equal(t, fighter.Shield, b.bot.State())

	b.opponent.SetState(fighter.Idle, true)
	b.opponent.Body().SetPosition(100, 505)
	b.src.floats = []float64{0.95}
	b.engine.Update(time.Second)

	assert.Equal(t, Idle, b.engine.Behavior())
	assert.Equal(t, fighter.Idle, b.bot.State())
}

func TestMeleeInRange(t *testing.T) {
	b := newBout(t, 560, Hard.Profile(), &fixedSource{floats: []float64{0.9, 0.99, 0.7}})

	b.engine.Update(time.Second)

	assert.Equal(t, Attacking, b.engine.Behavior())
	assert.Equal(t, []attack{{fighter.Punch, 10}}, b.arsenal.attacks)
	assert.Equal(t, time.Second+400*ms, b.engine.NextThink())
	assert.Equal(t, -1, b.bot.Facing())
}

func TestKickOnLowRoll(t *testing.T) {
	b := newBout(t, 560, Hard.Profile(), &fixedSource{floats: []float64{0.9, 0.99, 0.2}})
	b.engine.Update(time.Second)
	assert.Equal(t, []attack{{fighter.Kick, 15}}, b.arsenal.attacks)
}

func TestAttackWaitsForAttackDelay(t *testing.T) {
	b := newBout(t, 560, Hard.Profile(), &fixedSource{floats: []float64{0.9, 0.99, 0.7}})
	b.bot.MarkAttack(800 * ms)
	b.engine.Update(time.Second)
	assert.Equal(t, Attacking, b.engine.Behavior())
	assert.Empty(t, b.arsenal.attacks)
}

func TestPowerCloseUp(t *testing.T) {
	b := newBout(t, 560, Hard.Profile(), &fixedSource{floats: []float64{0.9, 0.1}, ints: []int{0, 2}})

	b.engine.Update(time.Second)

	assert.Equal(t, []fighter.PowerID{fighter.PowerSpell}, b.arsenal.powers)
	assert.Empty(t, b.arsenal.attacks)
	assert.Equal(t, time.Second, b.bot.LastAttack())
}

func TestCasting(t *testing.T) {
	b := newBout(t, 300, Hard.Profile(), &fixedSource{floats: []float64{0.7}, ints: []int{0, 0}})

	b.engine.Update(time.Second)

	assert.Equal(t, Casting, b.engine.Behavior())
	assert.Equal(t, []fighter.PowerID{fighter.PowerBall}, b.arsenal.powers)
	assert.Equal(t, time.Second+800*ms, b.engine.NextThink())
}

func TestCastingOnCooldownFallsBackToChasing(t *testing.T) {
	b := newBout(t, 300, Hard.Profile(), &fixedSource{floats: []float64{0.7}, ints: []int{0, 0}})
	b.bot.StartCooldown(fighter.PowerBall, 10*time.Second)

	b.engine.Update(time.Second)
	assert.Equal(t, Chasing, b.engine.Behavior())
	assert.Empty(t, b.arsenal.powers)

	b.engine.Update(time.Second + 16*ms)
	assert.Equal(t, fighter.Walk, b.bot.State())
	assert.Equal(t, -2500.0, b.botBody.ax)
}

func TestChaseRunsAfterOneSecond(t *testing.T) {
	p := Hard.Profile()
	p.ThinkMin, p.ThinkMax = 5*time.Second, 5*time.Second
	b := newBout(t, 100, p, &fixedSource{floats: []float64{0.1}})

	b.engine.Update(ms)
	assert.Equal(t, Chasing, b.engine.Behavior())
	assert.Equal(t, fighter.Walk, b.bot.State())

	b.engine.Update(1001 * ms)
	assert.Equal(t, fighter.Walk, b.bot.State())
	b.engine.Update(1002 * ms)
	assert.Equal(t, fighter.Run, b.bot.State())
}

func TestSkipsWhileHurtOrDead(t *testing.T) {
	b := newBout(t, 560, Hard.Profile(), &fixedSource{})
	b.bot.SetState(fighter.Hurt, true)
	b.engine.Update(time.Second)
	assert.Zero(t, b.engine.NextThink())
	assert.Empty(t, b.arsenal.attacks)

	b.bot.Die()
	b.engine.Update(2 * time.Second)
	assert.Zero(t, b.src.drawn)
}

func TestIdlesOnceOpponentIsDead(t *testing.T) {
	b := newBout(t, 100, Hard.Profile(), &fixedSource{floats: []float64{0.1}})
	b.engine.Update(ms)
	require.Equal(t, Chasing, b.engine.Behavior())
	require.Equal(t, -2500.0, b.botBody.ax)

	b.opponent.Die()
	b.opponent.Body().SetPosition(560, 505)
	drawn := b.src.drawn
	b.engine.Update(time.Second)
	b.engine.Update(2 * time.Second)

	assert.Equal(t, Idle, b.engine.Behavior())
	assert.Zero(t, b.botBody.ax)
	assert.Empty(t, b.arsenal.attacks)
	assert.Empty(t, b.arsenal.powers)
	assert.Equal(t, drawn, b.src.drawn, "no thinking against a dead opponent")
}

func TestThinkTiming(t *testing.T) {
	b := newBout(t, 300, Hard.Profile(), &fixedSource{floats: []float64{0.95}, ints: []int{250}})
	calls := 0
	b.engine.SetPolicy(PolicyFunc(func(s Situation, p Profile, roll float64) Behavior {
		calls++
		return Idle
	}))

	b.engine.Update(10 * ms)
	assert.Equal(t, 560*ms, b.engine.NextThink())
	assert.Equal(t, 1, calls)

	b.engine.Update(560 * ms)
	assert.Equal(t, 1, calls)
	b.engine.Update(561 * ms)
	assert.Equal(t, 2, calls)
}

func TestThinkDelayStaysInWindow(t *testing.T) {
	for _, d := range Difficulties() {
		p := d.Profile()
		b := newBout(t, 300, p, &fixedSource{})
		b.engine.rng = NewSource(7)
		b.engine.SetPolicy(PolicyFunc(func(Situation, Profile, float64) Behavior { return Idle }))
		now := time.Duration(0)
		for i := 0; i < 50; i++ {
			now = b.engine.NextThink() + ms
			b.engine.Update(now)
			delay := b.engine.NextThink() - now
			require.GreaterOrEqual(t, delay, p.ThinkMin, d.String())
			require.LessOrEqual(t, delay, p.ThinkMax, d.String())
		}
	}
}
