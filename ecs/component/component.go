package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys one component store in a world. IDs are process-wide so
// every world agrees on them.
type ComponentID uint32

var lastID atomic.Uint32

// ComponentKind is the typed key of one component store. The name shows up
// in errors and logs.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Name() string    { return k.name }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }
func (k ComponentKind[T]) String() string  { return k.name }

// ComponentHandle is how a component type is declared at package level.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent registers a component type under name.
func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind[T]{id: ComponentID(lastID.Add(1)), name: name}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
