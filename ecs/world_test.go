package ecs

import (
	"testing"

	"github.com/milk9111/brawler/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			require.Len(t, Entities(w), c.create)
			if c.destroyIndex >= 0 {
				require.True(t, DestroyEntity(w, ents[c.destroyIndex]))
				assert.False(t, IsAlive(w, ents[c.destroyIndex]))
				assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "double destroy")
				assert.Len(t, Entities(w), c.create-1)
			}
		})
	}
}

func TestRecycledSlotRejectsStaleHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")

	old := CreateEntity(w)
	v := 1
	require.NoError(t, Add(w, old, h.Kind(), &v))
	require.True(t, DestroyEntity(w, old))

	fresh := CreateEntity(w)
	assert.Equal(t, old.Slot(), fresh.Slot(), "slot is reused")
	assert.Equal(t, old.Generation()+1, fresh.Generation())
	assert.Equal(t, "1#1", fresh.String())
	assert.NotEqual(t, old, fresh)
	assert.False(t, IsAlive(w, old))
	assert.False(t, Has(w, fresh, h.Kind()), "components do not survive destruction")

	_, ok := Get(w, old, h.Kind())
	assert.False(t, ok)
	err := Add(w, old, h.Kind(), &v)
	assert.ErrorIs(t, err, component.ErrEntityNotAlive)
	assert.Contains(t, err.Error(), "add int to 1#0")
}

func TestEntityLogFields(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, e.MarshalLogObject(enc))
	assert.Equal(t, uint32(1), enc.Fields["slot"])
	assert.Equal(t, uint32(0), enc.Fields["gen"])
}

func TestSparseWorldComponents(t *testing.T) {
	w := NewWorld()
	h1 := component.NewComponent[int]("int")
	h2 := component.NewComponent[string]("string")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	n := 10
	require.NoError(t, Add(w, e1, h1.Kind(), &n))
	a, b := "a", "b"
	require.NoError(t, Add(w, e1, h2.Kind(), &a))
	require.NoError(t, Add(w, e2, h2.Kind(), &b))

	got, ok := Get(w, e1, h1.Kind())
	require.True(t, ok)
	assert.Equal(t, 10, *got)

	*got = 11
	again, _ := Get(w, e1, h1.Kind())
	assert.Equal(t, 11, *again, "components are stored by pointer")

	assert.True(t, Has(w, e2, h2.Kind()))
	assert.False(t, Has(w, e2, h1.Kind()))
	assert.Equal(t, 2, Count(w, h2.Kind()))

	assert.True(t, Remove(w, e1, h2.Kind()))
	assert.False(t, Remove(w, e1, h2.Kind()))
	assert.Equal(t, 1, Count(w, h2.Kind()))

	assert.ErrorIs(t, Add[int](w, e1, h1.Kind(), nil), component.ErrNilComponent)
	assert.ErrorIs(t, Add(w, e1, component.ComponentKind[int]{}, &n), component.ErrInvalidComponentKind)
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")
	other := component.NewComponent[string]("string")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	one, three := 1, 3
	s := "x"
	require.NoError(t, Add(w, e1, h.Kind(), &one))
	require.NoError(t, Add(w, e3, h.Kind(), &three))
	require.NoError(t, Add(w, e3, other.Kind(), &s))

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
	assert.ElementsMatch(t, []Entity{e1, e3}, ents)
	assert.NotContains(t, ents, e2)

	var both []Entity
	ForEach2(w, h.Kind(), other.Kind(), func(e Entity, _ *int, _ *string) { both = append(both, e) })
	assert.Equal(t, []Entity{e3}, both)

	first, ok := First(w, other.Kind())
	require.True(t, ok)
	assert.Equal(t, e3, first)
}

func TestForEachToleratesDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")
	var ents []Entity
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		v := i
		require.NoError(t, Add(w, e, h.Kind(), &v))
		ents = append(ents, e)
	}

	visited := 0
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		visited++
		if *v == 0 {
			DestroyEntity(w, ents[4])
		}
	})
	assert.Equal(t, 4, visited)
	assert.Equal(t, 4, Count(w, h.Kind()))
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	w := NewWorld()
	var order []int
	s := NewScheduler(
		SystemFunc(func(*World) { order = append(order, 1) }),
		nil,
		SystemFunc(func(*World) { order = append(order, 2) }),
	)
	s.Update(w)
	assert.Equal(t, []int{1, 2}, order)
	assert.Len(t, s.Systems(), 2)
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: "hit"})
	w.Events().Push(Event{Type: "ko"})
	assert.Equal(t, 2, w.Events().Len())
	evts := w.Events().Drain()
	require.Len(t, evts, 2)
	assert.Equal(t, "hit", evts[0].Type)
	assert.Nil(t, w.Events().Drain())
}
