package generate

import (
	"math/rand"

	"roomcrawl/internal/component"
)

// DefaultConfig mirrors the stock tuning so tests do not depend on the
// asset tables.
func DefaultConfig(floor int, rng *rand.Rand) *Config {
	return &Config{
		Width:          800,
		Height:         600,
		Floor:          floor,
		Rooms:          8,
		Boss:           true,
		MaxDifficulty:  10,
		BaseBudget:     3,
		BudgetPerLevel: 2,
		MaxEnemies:     10,
		EnemyTable: []EnemyEntry{
			{Kind: component.KindNormal, ThreatCost: 2, MinDifficulty: 1, Weight: 4},
			{Kind: component.KindFast, ThreatCost: 3, MinDifficulty: 1, Weight: 3},
			{Kind: component.KindPatrol, ThreatCost: 3, MinDifficulty: 2, Weight: 2},
			{Kind: component.KindChaser, ThreatCost: 3, MinDifficulty: 2, Weight: 3},
			{Kind: component.KindStrong, ThreatCost: 5, MinDifficulty: 3, Weight: 2},
			{Kind: component.KindFlank, ThreatCost: 4, MinDifficulty: 3, Weight: 2},
			{Kind: component.KindGold, ThreatCost: 6, MinDifficulty: 3, Weight: 1},
			{Kind: component.KindAmbush, ThreatCost: 4, MinDifficulty: 4, Weight: 1},
		},
		Elite:          &EnemyEntry{Kind: component.KindStrong, ThreatCost: 0},
		ItemEffects:    component.ItemEffects(),
		EnemyClearance: 30,
		EnemySpacing:   70,
		DoorKeepAway:   150,
		ItemClearance:  40,
		ItemSpacing:    60,
		PatrolPoints:   3,
		Placement:      Validator{MaxAttempts: 30, WallPadding: 30, Jitter: 20},
		Rand:           rng,
	}
}
