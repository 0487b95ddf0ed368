package assets

import "roomcrawl/internal/component"

// ItemDef describes one pickup effect.
type ItemDef struct {
	Name  string
	Glyph string
	Desc  string
}

// Items is the item catalogue, keyed by effect.
var Items = map[component.ItemEffect]ItemDef{
	component.EffectRestoreHealth: {Name: "Hyperflask", Glyph: "🧪", Desc: "+1 health"},
	component.EffectIncreaseSpeed: {Name: "Flux Treads", Glyph: "👟", Desc: "move faster"},
	component.EffectShield:        {Name: "Phase Mirror", Glyph: "🔰", Desc: "absorbs the next hit"},
	component.EffectDashReset:     {Name: "Tesseract", Glyph: "🌀", Desc: "dash ready"},
	component.EffectAmmoBoost:     {Name: "Power Cell", Glyph: "💥", Desc: "empowered shots"},
}

// ItemGlyph returns the glyph for an effect.
func ItemGlyph(e component.ItemEffect) string {
	if d, ok := Items[e]; ok {
		return d.Glyph
	}
	return "?"
}

// ItemName returns the display name for an effect.
func ItemName(e component.ItemEffect) string {
	if d, ok := Items[e]; ok {
		return d.Name
	}
	return e.String()
}
