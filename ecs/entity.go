package ecs

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Entity is a generational handle: the low half is the slot, the high half
// counts how many times that slot has been freed. Zero is never issued.
type Entity uint64

func newEntity(slot, gen uint32) Entity {
	return Entity(uint64(gen)<<32 | uint64(slot))
}

// Slot is the 1-based storage slot.
func (e Entity) Slot() uint32 { return uint32(e) }

// Generation distinguishes successive owners of one slot.
func (e Entity) Generation() uint32 { return uint32(uint64(e) >> 32) }

// index is the 0-based slot, or -1 for the zero handle.
func (e Entity) index() int { return int(e.Slot()) - 1 }

func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.Slot(), e.Generation())
}

func (e Entity) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint32("slot", e.Slot())
	enc.AddUint32("gen", e.Generation())
	return nil
}
