package match

import (
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/fighter"
)

// effects turns hit feedback into ECS components the renderer reads.
type effects struct {
	world  *ecs.World
	camera ecs.Entity
	spark  time.Duration
	log    *zap.Logger
}

func newEffects(w *ecs.World, spark time.Duration, log *zap.Logger) *effects {
	return &effects{world: w, camera: ecs.CreateEntity(w), spark: spark, log: log}
}

func (fx *effects) Tint(f *fighter.Fighter, c color.RGBA, d time.Duration) {
	e := ecs.Entity(f.Entity())
	if t, ok := ecs.Get(fx.world, e, component.TintComponent.Kind()); ok {
		t.Color, t.Remaining = c, d
		return
	}
	if err := ecs.Add(fx.world, e, component.TintComponent.Kind(), &component.Tint{Color: c, Remaining: d}); err != nil {
		fx.log.Warn("tint", zap.String("fighter", f.Name()), zap.Error(err))
	}
}

// Shake starts a camera shake. A shake already running is not interrupted.
func (fx *effects) Shake(d time.Duration, intensity float64) {
	kind := component.CameraShakeRequestComponent.Kind()
	if s, ok := ecs.Get(fx.world, fx.camera, kind); ok && s.Remaining > 0 {
		return
	}
	if err := ecs.Add(fx.world, fx.camera, kind, &component.CameraShakeRequest{Duration: d, Intensity: intensity, Remaining: d}); err != nil {
		fx.log.Warn("camera shake", zap.Stringer("camera", fx.camera), zap.Error(err))
	}
}

func (fx *effects) Impact(x, y, radius float64, element string) {
	e := ecs.CreateEntity(fx.world)
	spark := &component.ImpactSpark{
		X:        x,
		Y:        y,
		Radius:   radius,
		Element:  element,
		Duration: fx.spark,
	}
	if err := ecs.Add(fx.world, e, component.ImpactSparkComponent.Kind(), spark); err != nil {
		ecs.DestroyEntity(fx.world, e)
		fx.log.Warn("impact spark", zap.String("element", element), zap.Error(err))
	}
}

// shake returns the running camera shake, if any.
func (fx *effects) shake() (component.CameraShakeRequest, bool) {
	s, ok := ecs.Get(fx.world, fx.camera, component.CameraShakeRequestComponent.Kind())
	if !ok || s.Remaining <= 0 {
		return component.CameraShakeRequest{}, false
	}
	return *s, true
}

// clear drops every running effect.
func (fx *effects) clear() {
	ecs.ForEach(fx.world, component.TintComponent.Kind(), func(e ecs.Entity, _ *component.Tint) {
		ecs.Remove(fx.world, e, component.TintComponent.Kind())
	})
	ecs.Remove(fx.world, fx.camera, component.CameraShakeRequestComponent.Kind())
	ecs.ForEach(fx.world, component.ImpactSparkComponent.Kind(), func(e ecs.Entity, _ *component.ImpactSpark) {
		ecs.DestroyEntity(fx.world, e)
	})
}

// EffectSystem ages tints, camera shakes, and impact sparks by one step.
type EffectSystem struct {
	step time.Duration
}

func NewEffectSystem(step time.Duration) *EffectSystem {
	return &EffectSystem{step: step}
}

func (s *EffectSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.TintComponent.Kind(), func(e ecs.Entity, t *component.Tint) {
		t.Remaining -= s.step
		if t.Remaining <= 0 {
			ecs.Remove(w, e, component.TintComponent.Kind())
		}
	})
	ecs.ForEach(w, component.CameraShakeRequestComponent.Kind(), func(e ecs.Entity, r *component.CameraShakeRequest) {
		r.Remaining -= s.step
		if r.Remaining <= 0 {
			ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
		}
	})
	ecs.ForEach(w, component.ImpactSparkComponent.Kind(), func(e ecs.Entity, sp *component.ImpactSpark) {
		sp.Elapsed += s.step
		if sp.Elapsed >= sp.Duration {
			ecs.DestroyEntity(w, e)
		}
	})
}
