package component

import "roomcrawl/internal/geom"

// ItemEffect is what a pickup does to the player.
type ItemEffect uint8

const (
	EffectRestoreHealth ItemEffect = iota
	EffectIncreaseSpeed
	EffectShield
	EffectDashReset
	EffectAmmoBoost
	numItemEffects
)

var effectNames = [numItemEffects]string{
	"restoreHealth", "increaseSpeed", "shield", "dashReset", "ammoBoost",
}

func (e ItemEffect) String() string {
	if e < numItemEffects {
		return effectNames[e]
	}
	return "unknown"
}

// ItemEffects lists every effect in catalogue order.
func ItemEffects() []ItemEffect {
	out := make([]ItemEffect, numItemEffects)
	for i := range out {
		out[i] = ItemEffect(i)
	}
	return out
}

func (e ItemEffect) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *ItemEffect) UnmarshalText(b []byte) error {
	for i, n := range effectNames {
		if n == string(b) {
			*e = ItemEffect(i)
			return nil
		}
	}
	*e = EffectRestoreHealth
	return nil
}

// Item is a pickup lying in the room. Collected only ever goes false->true.
type Item struct {
	Pos       geom.Vec2
	Radius    float64
	Effect    ItemEffect
	Collected bool
}

// Circle returns the pickup disc.
func (i *Item) Circle() geom.Circle { return geom.Circle{C: i.Pos, R: i.Radius} }
