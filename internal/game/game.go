package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"roomcrawl/assets"
	"roomcrawl/internal/config"
	"roomcrawl/internal/render"
	"roomcrawl/internal/system"
)

const (
	frameDuration = 16 * time.Millisecond
	// maxFrame caps the simulated step after a stall so nothing tunnels.
	maxFrame = 100 * time.Millisecond
	flashCap = 64
)

// Game drives a Session on a tcell screen in real time.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	flashes  *render.Flashes
	tuning   *config.Tuning
	seed     int64
	log      *slog.Logger
	sink     system.Sink
	session  *Session
	keys     heldKeys
	events   chan tcell.Event
	done     chan struct{}
}

// New creates a Game on the process terminal.
func New(tuning *config.Tuning, seed int64, logger *slog.Logger, sink system.Sink) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, tuning, seed, logger, sink), nil
}

// NewWithScreen creates a Game on an initialized screen, such as one backed
// by an SSH session. The Game takes ownership of the screen.
func NewWithScreen(screen tcell.Screen, tuning *config.Tuning, seed int64, logger *slog.Logger, sink system.Sink) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = system.NopSink{}
	}
	g := &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		flashes:  render.NewFlashes(flashCap),
		tuning:   tuning,
		seed:     seed,
		log:      logger,
		sink:     sink,
		events:   make(chan tcell.Event, 16),
		done:     make(chan struct{}),
	}
	return g
}

// Run plays runs until the player quits or ctx is cancelled. Each finished
// run is appended to the run log.
func (g *Game) Run(ctx context.Context) {
	defer g.screen.Fini()
	defer close(g.done)
	go g.pollEvents()

	for run := 0; ; run++ {
		g.resetForRun(g.seed + int64(run))
		quit := g.play(ctx)
		saveRunLog(g.session.Run(), g.log)
		if quit || !g.showEndScreen(ctx) {
			return
		}
	}
}

// pollEvents forwards screen events until the screen is finalized.
func (g *Game) pollEvents() {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			close(g.events)
			return
		}
		select {
		case g.events <- ev:
		case <-g.done:
			return
		}
	}
}

func (g *Game) resetForRun(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	g.session = NewSession(g.tuning, rng, system.Sinks{g.flashes, g.sink}, g.log)
	g.session.Run().Seed = seed
	g.keys.reset()
	g.flashes.Reset()
	g.log.Info("run started", "seed", seed, "run", g.session.Run().ID)
}

// play runs the real-time loop of one run. It reports whether the player
// asked to quit.
func (g *Game) play(ctx context.Context) bool {
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()
	last := time.Now()
	current := g.session.Room()

	for g.session.Outcome() == OutcomePlaying {
		select {
		case <-ctx.Done():
			return true
		case ev, ok := <-g.events:
			if !ok {
				return true
			}
			if g.handleEvent(ev) {
				return true
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last), maxFrame)
			last = now
			g.session.Step(dt, g.keys.snapshot(now))
			g.flashes.Tick(dt)
			if rt := g.session.Room(); rt != current {
				current = rt
				g.flashes.Reset()
			}
			g.draw()
		}
	}
	return false
}

// handleEvent applies one screen event and reports a quit request.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		action := keyToAction(ev)
		if action == ActionQuit {
			return true
		}
		g.keys.press(action, time.Now())
	}
	return false
}

func (g *Game) draw() {
	s := g.session
	rt := s.Room()
	g.renderer.DrawFrame(render.Frame{
		Room:    rt,
		Player:  &s.Player,
		Shots:   s.Shots,
		Floor:   s.Floor(),
		Flashes: g.flashes.Active(),
	})
	state := rt.State().String()
	if s.Advancing() {
		state = "descending"
	}
	g.renderer.DrawHUD(render.HUD{
		HP:        s.Player.HP,
		MaxHP:     s.Player.MaxHP,
		Floor:     s.Floor(),
		FloorName: assets.FloorName(s.Floor()),
		Room:      s.RoomID(),
		RoomState: state,
		Enemies:   rt.Alive(),
		DashReady: s.Player.Dash.Cooldown <= 0 && !s.Player.Dash.Active,
		Shielded:  s.Player.Shield > 0,
		Empowered: s.Player.Empowered,
		Messages:  s.Messages(),
	})
	g.renderer.Show()
}

func (g *Game) putText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// showEndScreen renders the run summary and returns true if the player
// wants to try again, false to quit.
func (g *Game) showEndScreen(ctx context.Context) bool {
	run := g.session.Run()
	won := g.session.Outcome() == OutcomeVictory

	type killEntry struct {
		kind  string
		count int
	}
	var kills []killEntry
	for k, c := range run.EnemiesKilled {
		kills = append(kills, killEntry{k, c})
	}
	sort.Slice(kills, func(i, j int) bool {
		if kills[i].count != kills[j].count {
			return kills[i].count > kills[j].count
		}
		return kills[i].kind < kills[j].kind
	})
	items := 0
	for _, c := range run.ItemsPicked {
		items += c
	}

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		g.screen.Clear()
		sw, _ := g.screen.Size()
		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2
		if won {
			g.putText(2, y, "THE LAST DOOR SWINGS OPEN", gold)
			badge := "[VICTORY]"
			g.putText(sw-len(badge)-1, y, badge, green)
		} else {
			g.putText(2, y, "THE ROOMS CLOSE IN", gold)
			badge := "[DEFEAT]"
			g.putText(sw-len(badge)-1, y, badge, red)
		}
		y += 2

		label(y, "Floor Reached:", fmt.Sprintf("%d %s", run.FloorsReached, assets.FloorName(run.FloorsReached)))
		y++
		label(y, "Time:", (time.Duration(run.Seconds * float64(time.Second))).Round(time.Second).String())
		y++
		label(y, "Rooms Cleared:", fmt.Sprintf("%d of %d visited", run.RoomsCleared, run.RoomsVisited))
		y += 2

		label(y, "Enemies Slain:", fmt.Sprintf("%d", run.TotalKills()))
		y++
		if len(kills) > 0 {
			breakdown := ""
			for _, e := range kills {
				breakdown += fmt.Sprintf("%s x%d  ", e.kind, e.count)
			}
			if len(breakdown) > sw-6 {
				breakdown = breakdown[:max(sw-6, 0)]
			}
			g.putText(4, y, breakdown, dim)
			y++
		}
		y++
		label(y, "Items Picked:", fmt.Sprintf("%d", items))
		y++
		label(y, "Shots / Dash Hits:", fmt.Sprintf("%d / %d", run.ShotsFired, run.DashHits))
		y++
		label(y, "Damage Dealt:", fmt.Sprintf("%d", run.DamageDealt))
		y++
		label(y, "Damage Taken:", fmt.Sprintf("%d", run.DamageTaken))
		y += 2
		sep(y)
		y += 2
		g.putText(2, y, "[R] Try Again", green)
		g.putText(18, y, "[Q] Quit", red)
		g.screen.Show()

		var ev tcell.Event
		select {
		case <-ctx.Done():
			return false
		case e, ok := <-g.events:
			if !ok {
				return false
			}
			ev = e
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			g.renderer.Resize()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return false
			}
		}
	}
}

// Session returns the run currently being played.
func (g *Game) Session() *Session { return g.session }
