package combat

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
	x, y, vx, vy float64
}

func (b *fakeBody) Position() (float64, float64)    { return b.x, b.y }
func (b *fakeBody) SetPosition(x, y float64)        { b.x, b.y = x, y }
func (b *fakeBody) Velocity() (float64, float64)    { return b.vx, b.vy }
func (b *fakeBody) SetVelocity(vx, vy float64)      { b.vx, b.vy = vx, vy }
func (b *fakeBody) SetVelocityX(vx float64)         { b.vx = vx }
func (b *fakeBody) SetVelocityY(vy float64)         { b.vy = vy }
func (b *fakeBody) SetAccelerationX(float64)        {}
func (b *fakeBody) SetMaxVelocity(float64, float64) {}
func (b *fakeBody) Extents() (float64, float64)     { return 20, 45 }
func (b *fakeBody) Grounded() bool                  { return true }

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

func newFighter(t testing.TB, clk *clock.Clock, name string, entity uint64, body fighter.Body, x float64, facing int) *fighter.Fighter {
	t.Helper()
	return fighter.New(
		fighter.Config{Name: name, Character: "Player1", Element: "fire", Entity: entity, SpawnX: x, SpawnY: 505, Facing: facing},
		fighter.Deps{Body: body, Animator: anim.NewAnimator(testLibrary(t)), Clock: clk},
		fighter.DefaultStats(),
	)
}

func advance(clk *clock.Clock, d time.Duration) {
	clk.Advance(d)
	clk.RunDue()
}

type duel struct {
	clk          *clock.Clock
	stop         *HitStop
	resolver     *Resolver
	attacker     *fighter.Fighter
	target       *fighter.Fighter
	targetBody   *fakeBody
	attackerBody *fakeBody
}

func newDuel(t *testing.T, targetX float64) *duel {
	d := &duel{clk: clock.New(), attackerBody: &fakeBody{}, targetBody: &fakeBody{}}
	d.stop = NewHitStop(d.clk, DefaultConfig().HitStop)
	d.resolver = NewResolver(DefaultConfig(), d.clk, d.stop, nil)
	d.attacker = newFighter(t, d.clk, "player", 1, d.attackerBody, 200, 1)
	d.target = newFighter(t, d.clk, "enemy", 2, d.targetBody, targetX, -1)
	return d
}

func TestHitTest(t *testing.T) {
	cases := []struct {
		name   string
		dist, dy float64
		facing bool
		want   bool
	}{
		{"in reach facing", 40, 10, true, true},
		{"far", 200, 0, true, false},
		{"point blank behind", 45, 0, false, true},
		{"reach but turned away", 60, 0, false, false},
		{"too high", 10, 100, true, false},
		{"edge of reach", 70, 0, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, HitTest(c.dist, c.dy, c.facing, 70, 50, 100))
		})
	}
}

func TestKickLandsAfterDelayThenKnocksBack(t *testing.T) {
	d := newDuel(t, 240)
	var hits []Hit
	d.resolver.OnHit(func(h Hit) { hits = append(hits, h) })

	require.True(t, d.resolver.PerformAttack(d.attacker, d.target, fighter.Kick, 15, 0))
	assert.Equal(t, fighter.Kick, d.attacker.State())

	advance(d.clk, 199*ms)
	assert.Equal(t, 100, d.target.Health())

	advance(d.clk, ms)
	assert.Equal(t, 85, d.target.Health())
	assert.Equal(t, fighter.Hurt, d.target.State())
	assert.True(t, d.stop.Active())
	require.Len(t, hits, 1)
	assert.Equal(t, "kick", hits[0].Source)

	advance(d.clk, 60*ms)
	assert.False(t, d.stop.Active())
	assert.Equal(t, 200.0, d.targetBody.vx)
	assert.Equal(t, -100.0, d.targetBody.vy)
}

func TestKnockbackPushesAwayFromAttacker(t *testing.T) {
	d := newDuel(t, 170)
	d.attacker.SetFacing(-1)
	d.resolver.PerformAttack(d.attacker, d.target, fighter.Punch, 10, 0)
	advance(d.clk, 200*ms)
	assert.Equal(t, 90, d.target.Health())
	assert.True(t, d.stop.Active())

	advance(d.clk, 60*ms)
	assert.False(t, d.stop.Active())
	assert.Equal(t, -200.0, d.targetBody.vx)
}

func TestAttackOutOfRangeWhiffs(t *testing.T) {
	d := newDuel(t, 400)
	d.resolver.PerformAttack(d.attacker, d.target, fighter.Punch, 10, 0)
	advance(d.clk, 300*ms)
	assert.Equal(t, 100, d.target.Health())
	assert.False(t, d.stop.Active())
}

func TestNewAttackReplacesPendingCheck(t *testing.T) {
	d := newDuel(t, 240)
	d.resolver.PerformAttack(d.attacker, d.target, fighter.Punch, 10, 0)
	advance(d.clk, 100*ms)
	d.resolver.PerformAttack(d.attacker, d.target, fighter.Punch, 10, 100*ms)

	advance(d.clk, 100*ms)
	assert.Equal(t, 100, d.target.Health(), "first check was cancelled")
	assert.True(t, d.resolver.Pending(d.attacker))

	advance(d.clk, 100*ms)
	assert.Equal(t, 90, d.target.Health())
	assert.False(t, d.resolver.Pending(d.attacker))
}

func TestAttackIsDroppedWhenAttackerDies(t *testing.T) {
	d := newDuel(t, 240)
	d.resolver.PerformAttack(d.attacker, d.target, fighter.Punch, 10, 0)
	d.attacker.Die()
	advance(d.clk, 300*ms)
	assert.Equal(t, 100, d.target.Health())
	assert.Equal(t, 1, d.clk.Dropped())

	assert.False(t, d.resolver.PerformAttack(d.attacker, d.target, fighter.Punch, 10, 300*ms))
}

func TestHitStopNests(t *testing.T) {
	clk := clock.New()
	stop := NewHitStop(clk, 60*ms)
	resumed := 0
	stop.Freeze(func() { resumed++ })
	advance(clk, 30*ms)
	stop.Freeze(func() { resumed++ })

	advance(clk, 30*ms)
	assert.True(t, stop.Active())
	assert.Equal(t, 1, resumed)

	advance(clk, 30*ms)
	assert.False(t, stop.Active())
	assert.Equal(t, 2, resumed)
}

func TestResetCancelsPending(t *testing.T) {
	d := newDuel(t, 240)
	d.resolver.PerformAttack(d.attacker, d.target, fighter.Punch, 10, 0)
	d.resolver.Reset()
	advance(d.clk, 300*ms)
	assert.Equal(t, 100, d.target.Health())
}

func TestHitStopResetDropsResume(t *testing.T) {
	clk := clock.New()
	stop := NewHitStop(clk, 60*ms)
	resumed := false
	stop.Freeze(func() { resumed = true })
	stop.Reset()
	assert.False(t, stop.Active())

	advance(clk, 100*ms)
	assert.False(t, resumed)
	assert.Equal(t, 1, clk.Dropped())
}
