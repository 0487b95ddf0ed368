package assets

import "math/rand"

// floorLore holds flavor lines per floor (index 0 unused). One is shown when
// the floor is entered.
var floorLore = [][]string{
	{},
	{ // Crystalline Labs
		"The doors seal behind you with a pneumatic sigh. Something in here was waiting.",
		"Shattered containment cells line the walls. The occupants are not far.",
		"A warning light blinks over every exit. It stops when the room is quiet.",
	},
	{ // Bioluminescent Warrens
		"The walls glow faintly where something brushed past. Several somethings.",
		"Spores hang in the air between rooms. The doors do not open for them either.",
		"Every chamber smells of copper. The locks only turn when nothing moves.",
	},
	{ // Resonance Engine
		"Gears grind in the walls. Each door is wired to the silence of its room.",
		"The machine counts the living in every chamber. It opens for zero.",
		"Pistons hammer overhead in time with your footsteps. Then they stop matching.",
	},
	{ // Fractured Observatory
		"Lenses in the ceiling follow you from room to room.",
		"Some doors open onto rooms no chart remembers. They lead back the way you came.",
		"The star maps on the floor are scuffed by claws.",
	},
	{ // Apex Nexus
		"Power conduits pulse behind every wall. The warden is close.",
		"The rooms here were built for something larger than you.",
		"Every door on this floor was locked from the inside.",
	},
}

// Lore returns a random flavor line for floor, or "" when it has none.
func Lore(floor int, rng *rand.Rand) string {
	if floor <= 0 || floor >= len(floorLore) || len(floorLore[floor]) == 0 {
		return ""
	}
	lines := floorLore[floor]
	return lines[rng.Intn(len(lines))]
}
