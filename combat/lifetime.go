package combat

import (
	"time"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// LifetimeSystem counts down TTL components by a fixed step. Entities with
// a Fade fade out after their TTL before they are destroyed.
type LifetimeSystem struct {
	step    time.Duration
	destroy func(*ecs.World, ecs.Entity)
}

// NewLifetimeSystem builds the system. destroy may be nil, in which case
// entities are simply destroyed.
func NewLifetimeSystem(step time.Duration, destroy func(*ecs.World, ecs.Entity)) *LifetimeSystem {
	if destroy == nil {
		destroy = func(w *ecs.World, e ecs.Entity) { ecs.DestroyEntity(w, e) }
	}
	return &LifetimeSystem{step: step, destroy: destroy}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Remaining > 0 {
			ttl.Remaining -= s.step
			if ttl.Remaining > 0 {
				return
			}
		}
		if fade, ok := ecs.Get(w, e, component.FadeComponent.Kind()); ok {
			if !fade.Started {
				fade.Started = true
				return
			}
			fade.Elapsed += s.step
			if fade.Elapsed < fade.Duration {
				return
			}
		}
		s.destroy(w, e)
	})
}
