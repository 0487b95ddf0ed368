package game

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"roomcrawl/internal/system"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	ID            string         `json:"id"`
	Seed          int64          `json:"seed"`
	Started       time.Time      `json:"started"`
	Seconds       float64        `json:"seconds"`
	Outcome       string         `json:"outcome"`
	FloorsReached int            `json:"floors_reached"`
	RoomsVisited  int            `json:"rooms_visited"`
	RoomsCleared  int            `json:"rooms_cleared"`
	AdHocRooms    int            `json:"adhoc_rooms"`
	EnemiesKilled map[string]int `json:"enemies_killed"` // kind -> kill count
	ItemsPicked   map[string]int `json:"items_picked"`   // effect -> pickups
	DamageDealt   int            `json:"damage_dealt"`
	DamageTaken   int            `json:"damage_taken"`
	ShotsFired    int            `json:"shots_fired"`
	DashHits      int            `json:"dash_hits"`
}

func newRunLog(seed int64) *RunLog {
	return &RunLog{
		ID:            uuid.NewString(),
		Seed:          seed,
		Started:       time.Now(),
		Outcome:       "abandoned",
		EnemiesKilled: make(map[string]int),
		ItemsPicked:   make(map[string]int),
	}
}

// Emit tallies simulation events, so the run log can sit in the sink chain.
func (l *RunLog) Emit(e system.Event) {
	switch e.Kind {
	case system.EventEnemyHit:
		l.DamageDealt += e.Amount
	case system.EventEnemyKilled:
		l.EnemiesKilled[e.Enemy.String()]++
	case system.EventPlayerHit:
		l.DamageTaken += e.Amount
	case system.EventPickup:
		l.ItemsPicked[e.Item.String()]++
	case system.EventPlayerShot:
		l.ShotsFired++
	case system.EventDashHit:
		l.DashHits++
	case system.EventRoomCleared:
		l.RoomsCleared++
	case system.EventRoomEnter:
		l.RoomsVisited++
	}
}

// TotalKills sums the kill counts.
func (l *RunLog) TotalKills() int {
	n := 0
	for _, c := range l.EnemiesKilled {
		n += c
	}
	return n
}

// saveRunLog appends the completed run as a single JSON line to runs.jsonl.
// Failures are logged and dropped so a disk problem never ends the game.
func saveRunLog(run *RunLog, logger *slog.Logger) {
	dir, err := runLogDir()
	if err != nil {
		logger.Warn("run log directory unavailable", "err", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("create run log directory", "dir", dir, "err", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("open run log", "err", err)
		return
	}
	defer f.Close()

	data, err := json.Marshal(run)
	if err != nil {
		logger.Warn("encode run log", "err", err)
		return
	}
	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		logger.Warn("write run log", "err", err)
	}
}

// runLogDir returns the directory where run logs are stored.
// Follows the XDG base directory layout: $XDG_DATA_HOME/roomcrawl,
// defaulting to ~/.local/share/roomcrawl.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "roomcrawl"), nil
}
