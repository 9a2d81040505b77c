package arbor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key is a logical key name such as "forward" or "turret_left". Logical
// keys are bound to physical keys by the input source.
type Key string

// Input is polled once per frame for the state of logical keys.
type Input interface {
	IsKeyDown(k Key) bool
}

// KeyBindings maps logical keys to the physical keys that trigger them.
type KeyBindings map[Key][]ebiten.Key

// Clone returns a deep copy of b.
func (b KeyBindings) Clone() KeyBindings {
	out := make(KeyBindings, len(b))
	for k, keys := range b {
		out[k] = append([]ebiten.Key(nil), keys...)
	}
	return out
}

// Keys returns the bound logical keys in sorted order.
func (b KeyBindings) Keys() []Key {
	keys := make([]Key, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// --- EbitenInput ---

// EbitenInput polls the keyboard through ebiten. A logical key is down when
// any of its bound physical keys is pressed.
type EbitenInput struct {
	bindings KeyBindings
}

// NewEbitenInput creates an input source with a copy of the given bindings.
func NewEbitenInput(bindings KeyBindings) *EbitenInput {
	if bindings == nil {
		bindings = KeyBindings{}
	}
	return &EbitenInput{bindings: bindings.Clone()}
}

// Bind replaces the physical keys bound to k.
func (in *EbitenInput) Bind(k Key, keys ...ebiten.Key) {
	in.bindings[k] = append([]ebiten.Key(nil), keys...)
}

// Bindings returns the physical keys bound to k.
func (in *EbitenInput) Bindings(k Key) []ebiten.Key {
	return in.bindings[k]
}

// IsKeyDown reports whether any physical key bound to k is pressed.
// Unbound keys are never down.
func (in *EbitenInput) IsKeyDown(k Key) bool {
	for _, ek := range in.bindings[k] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

// IsKeyJustPressed reports whether a physical key bound to k went down this tick.
func (in *EbitenInput) IsKeyJustPressed(k Key) bool {
	for _, ek := range in.bindings[k] {
		if inpututil.IsKeyJustPressed(ek) {
			return true
		}
	}
	return false
}

// --- StaticInput ---

// StaticInput is an Input whose key state is set by the caller. Useful for
// tests and headless drivers.
type StaticInput map[Key]bool

// IsKeyDown reports the stored state of k.
func (s StaticInput) IsKeyDown(k Key) bool {
	return s[k]
}

// Press marks k as down.
func (s StaticInput) Press(k Key) {
	s[k] = true
}

// ReleaseKey marks k as up.
func (s StaticInput) ReleaseKey(k Key) {
	delete(s, k)
}

// --- Key names ---

// ParseKey resolves a physical key name ("W", "ArrowUp", "space") to an
// ebiten.Key. Matching is case-insensitive.
func ParseKey(name string) (ebiten.Key, error) {
	name = strings.TrimSpace(name)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
