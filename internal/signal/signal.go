// Package signal turns free-text card effects into numeric gameplay signals.
package signal

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Category names one gameplay dimension an effect can move.
type Category string

const (
	Wall              Category = "wall"
	Tower             Category = "tower"
	ProductionOwn     Category = "production_own"
	ProductionEnemy   Category = "production_enemy"    // own production lost
	ProductionEnemyDe Category = "production_enemy_de" // enemy production destroyed
	ResourceGain      Category = "resource_gain"
	ResourceLose      Category = "resource_lose"
	ResourceEnemyLose Category = "resource_enemy_lose"
	PlayAgain         Category = "play_again"
	DrawDiscard       Category = "draw_discard"
	Damage            Category = "damage"
	TowerDamage       Category = "tower_damage"
	TowerDamageSelf   Category = "tower_damage_self"
)

var categories = []Category{
	Wall, Tower, ProductionOwn, ProductionEnemy, ProductionEnemyDe,
	ResourceGain, ResourceLose, ResourceEnemyLose, PlayAgain, DrawDiscard,
	Damage, TowerDamage, TowerDamageSelf,
}

// Categories returns every category in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsCategory reports whether name is one of the known categories.
func IsCategory(name string) bool {
	for _, c := range categories {
		if string(c) == name {
			return true
		}
	}
	return false
}

// Map holds the signals extracted from one effect text. Keys keep the order in
// which the extractor first touched them.
type Map struct {
	m *orderedmap.OrderedMap[string, float64]
}

// NewMap returns an empty signal map.
func NewMap() Map {
	return Map{m: orderedmap.New[string, float64]()}
}

// Add accumulates v into category c.
func (s Map) Add(c Category, v float64) {
	cur, _ := s.m.Get(string(c))
	s.m.Set(string(c), cur+v)
}

// Set replaces the value of category c.
func (s Map) Set(c Category, v float64) {
	s.m.Set(string(c), v)
}

// Get returns the value of category c and whether it was set.
func (s Map) Get(c Category) (float64, bool) {
	if s.m == nil {
		return 0, false
	}
	return s.m.Get(string(c))
}

// Value returns the value of category c, or zero.
func (s Map) Value(c Category) float64 {
	v, _ := s.Get(c)
	return v
}

// Len returns the number of categories present.
func (s Map) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Each calls fn for every category in insertion order.
func (s Map) Each(fn func(c Category, v float64)) {
	if s.m == nil {
		return
	}
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(Category(pair.Key), pair.Value)
	}
}

// Keys returns the present categories in insertion order.
func (s Map) Keys() []Category {
	keys := make([]Category, 0, s.Len())
	s.Each(func(c Category, _ float64) {
		keys = append(keys, c)
	})
	return keys
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (s Map) MarshalJSON() ([]byte, error) {
	if s.m == nil {
		return []byte("{}"), nil
	}
	return s.m.MarshalJSON()
}

// String renders the map as "{wall: 1, damage: -2.5}".
func (s Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.Each(func(c Category, v float64) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(string(c))
		sb.WriteString(": ")
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	})
	sb.WriteByte('}')
	return sb.String()
}
