package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pang/config"
)

type countingAudio struct {
	fired, popped int
}

func (a *countingAudio) HarpoonFired() { a.fired++ }
func (a *countingAudio) BallPopped()   { a.popped++ }

type eventLog struct {
	events []Event
}

func (l *eventLog) count(kind EventKind) int {
	n := 0
	for _, e := range l.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T) (*Game, *eventLog, *countingAudio) {
	t.Helper()
	cfg := config.MustLoad("")
	audio := &countingAudio{}
	opts := DefaultOptions()
	opts.Audio = audio

	g, err := NewGame(cfg, opts)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	log := &eventLog{}
	g.Events().SubscribeAll(func(e Event) { log.events = append(log.events, e) })
	g.Start()
	return g, log, audio
}

func ballEntities(g *Game) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(g.balls))
	for e := range g.balls {
		out = append(out, e)
	}
	return out
}

// harpoonInto anchors a harpoon inside the ball so it strikes on the next step.
func harpoonInto(g *Game, e ecs.Entity) {
	pos, _, _, _ := g.ballMapper.Get(e)
	g.launchHarpoon(pos.X, pos.Y-0.1)
}

// exposePlayer drops the player's invulnerability.
func exposePlayer(g *Game) {
	_, _, pl := g.playerMapper.Get(g.player)
	pl.Invulnerable = false
	pl.InvulnRemaining = 0
}

func TestStartSpawnsInitialSet(t *testing.T) {
	g, log, _ := newTestGame(t)

	if g.Session().State != StateRunning {
		t.Fatalf("state = %s, want running", g.Session().State)
	}
	if g.BallCount() != g.cfg.Session.InitialBallCount {
		t.Errorf("balls = %d, want %d", g.BallCount(), g.cfg.Session.InitialBallCount)
	}
	for _, e := range ballEntities(g) {
		pos, _, _, ball := g.ballMapper.Get(e)
		if ball.Size != g.cfg.Ball.MaxSize {
			t.Errorf("initial ball size = %d, want %d", ball.Size, g.cfg.Ball.MaxSize)
		}
		if pos.X != -3 || pos.Y != 2 {
			t.Errorf("initial ball at (%v, %v), want (-3, 2)", pos.X, pos.Y)
		}
	}
	if _, ok := g.Player(); !ok {
		t.Error("no player after Start")
	}
	if log.count(EventGameStart) != 1 {
		t.Errorf("game start events = %d, want 1", log.count(EventGameStart))
	}
	if g.Background() != 0 {
		t.Errorf("background = %d, want 0", g.Background())
	}
}

func TestHarpoonSplitsLargeBall(t *testing.T) {
	g, log, audio := newTestGame(t)

	parent := ballEntities(g)[0]
	harpoonInto(g, parent)
	g.Step(Input{})

	if g.world.Alive(parent) {
		t.Error("parent ball still alive after split")
	}
	if g.BallCount() != 2 {
		t.Fatalf("balls = %d, want 2", g.BallCount())
	}
	for _, e := range ballEntities(g) {
		_, _, _, ball := g.ballMapper.Get(e)
		if ball.Size != 2 {
			t.Errorf("child size = %d, want 2", ball.Size)
		}
	}
	if g.Session().Score != 2*g.cfg.Ball.BasePoints {
		t.Errorf("score = %d, want %d", g.Session().Score, 2*g.cfg.Ball.BasePoints)
	}
	if log.count(EventScoreChanged) != 1 || log.events[len(log.events)-1].Points != 200 {
		t.Errorf("score events = %+v", log.events)
	}
	if g.HarpoonCount() != 0 {
		t.Errorf("harpoons = %d, want 0 after hit", g.HarpoonCount())
	}
	if audio.popped != 1 {
		t.Errorf("pop cues = %d, want 1", audio.popped)
	}
}

func TestClearingLevelCompletesOnce(t *testing.T) {
	g, log, _ := newTestGame(t)

	for i := 0; i < 100 && g.Session().Running(); i++ {
		for _, e := range ballEntities(g) {
			harpoonInto(g, e)
		}
		g.Step(Input{})
	}

	if g.BallCount() != 0 {
		t.Fatalf("balls = %d after clearing loop", g.BallCount())
	}
	if n := log.count(EventLevelComplete); n != 1 {
		t.Errorf("level complete events = %d, want 1", n)
	}
	if g.Session().State != StateLevelTransition {
		t.Errorf("state = %s, want level_transition", g.Session().State)
	}
	if g.Session().Level != 2 {
		t.Errorf("level = %d, want 2", g.Session().Level)
	}
	// 1 hit on size 3, 2 on size 2, 4 on size 1
	want := 200 + 2*300 + 4*400
	if g.Session().Score != want {
		t.Errorf("score = %d, want %d", g.Session().Score, want)
	}

	// Transition loads level 2 with two evenly spaced large balls
	for i := 0; i < 180 && !g.Session().Running(); i++ {
		g.Step(Input{})
	}
	if !g.Session().Running() {
		t.Fatal("level 2 never started")
	}
	if g.BallCount() != 2 {
		t.Errorf("level 2 balls = %d, want 2", g.BallCount())
	}
	if g.Background() != 1 {
		t.Errorf("background = %d, want 1", g.Background())
	}
	if log.count(EventLevelComplete) != 1 {
		t.Errorf("level complete fired again during transition")
	}
}

func TestLivesExhaustedGameOverAndRestart(t *testing.T) {
	g, log, _ := newTestGame(t)
	g.AddScore(500)

	ball := ballEntities(g)[0]
	for i := 0; i < g.cfg.Session.Lives; i++ {
		exposePlayer(g)
		ppos, _, _ := g.playerMapper.Get(g.player)
		bpos, bvel, _, _ := g.ballMapper.Get(ball)
		bpos.X, bpos.Y = ppos.X, ppos.Y
		bvel.Y = 0
		g.Step(Input{})
	}

	if n := log.count(EventLifeLost); n != g.cfg.Session.Lives {
		t.Errorf("life lost events = %d, want %d", n, g.cfg.Session.Lives)
	}
	if n := log.count(EventGameOver); n != 1 {
		t.Fatalf("game over events = %d, want 1", n)
	}
	if g.Session().State != StateGameOver {
		t.Fatalf("state = %s, want game_over", g.Session().State)
	}

	for i := 0; i < 200; i++ {
		g.Step(Input{})
	}

	s := g.Session()
	if s.State != StateRunning {
		t.Fatalf("state after restart = %s, want running", s.State)
	}
	if s.Score != 0 || s.Lives != g.cfg.Session.Lives || s.Level != 1 {
		t.Errorf("after restart score/lives/level = %d/%d/%d", s.Score, s.Lives, s.Level)
	}
	if log.count(EventGameOver) != 1 {
		t.Errorf("game over fired %d times", log.count(EventGameOver))
	}
	if g.BallCount() != 1 {
		t.Errorf("balls after restart = %d, want 1", g.BallCount())
	}
	if g.HighScores().Best() != 500 {
		t.Errorf("best high score = %d, want 500", g.HighScores().Best())
	}
}

func TestInvulnerablePlayerIgnoresContact(t *testing.T) {
	g, log, _ := newTestGame(t)

	ball := ballEntities(g)[0]
	ppos, _, _ := g.playerMapper.Get(g.player)
	bpos, _, _, _ := g.ballMapper.Get(ball)
	bpos.X, bpos.Y = ppos.X, ppos.Y
	g.Step(Input{})

	if log.count(EventLifeLost) != 0 {
		t.Error("invulnerable player lost a life")
	}
}

func TestTimeoutEndsGame(t *testing.T) {
	g, log, _ := newTestGame(t)
	g.session.RemainingTime = 1.5 * float64(g.dt)

	g.Step(Input{})
	if !g.Session().Running() {
		t.Fatal("game ended one tick early")
	}
	g.Step(Input{})

	if log.count(EventGameOver) != 1 {
		t.Fatalf("game over events = %d, want 1", log.count(EventGameOver))
	}
	if g.Session().RemainingTime != 0 {
		t.Errorf("remaining time = %v, want 0", g.Session().RemainingTime)
	}
	hist := g.LevelHistory()
	if len(hist) != 1 || hist[0].Outcome != "timeout" {
		t.Errorf("level history = %+v", hist)
	}
}

func TestTimerStrictlyDecreasesWhileRunning(t *testing.T) {
	g, _, _ := newTestGame(t)
	prev := g.Session().RemainingTime
	for i := 0; i < 60; i++ {
		g.Step(Input{})
		if !g.Session().Running() {
			break
		}
		if g.Session().RemainingTime >= prev {
			t.Fatalf("tick %d: time %v did not decrease from %v", i, g.Session().RemainingTime, prev)
		}
		prev = g.Session().RemainingTime
	}
}

func TestLevelCompleteWinsTieWithTimeout(t *testing.T) {
	g, log, _ := newTestGame(t)
	for _, e := range ballEntities(g) {
		g.destroyBall(e)
	}
	last := g.SpawnBall(1, 0, 1)
	harpoonInto(g, last)
	g.session.RemainingTime = 0.5 * float64(g.dt)

	g.Step(Input{})

	if log.count(EventLevelComplete) != 1 {
		t.Errorf("level complete events = %d, want 1", log.count(EventLevelComplete))
	}
	if log.count(EventGameOver) != 0 {
		t.Errorf("game over fired on a tie")
	}
}

func TestManualRestartCancelsTransition(t *testing.T) {
	g, log, _ := newTestGame(t)
	for _, e := range ballEntities(g) {
		g.destroyBall(e)
	}
	g.Step(Input{})
	if g.Session().State != StateLevelTransition {
		t.Fatalf("state = %s, want level_transition", g.Session().State)
	}

	g.Step(Input{Restart: true})
	if g.Session().State != StateRestarting {
		t.Fatalf("state after restart = %s, want restarting", g.Session().State)
	}
	if g.scheduler.Pending() != 1 {
		t.Errorf("pending tasks = %d, want 1", g.scheduler.Pending())
	}

	starts := log.count(EventGameStart)
	for i := 0; i < 240; i++ {
		g.Step(Input{})
	}
	if got := log.count(EventGameStart) - starts; got != 1 {
		t.Errorf("game start events after restart = %d, want 1", got)
	}
	if g.Session().Level != 1 || g.BallCount() != 1 {
		t.Errorf("level/balls = %d/%d, want 1/1", g.Session().Level, g.BallCount())
	}
}

func TestFireCooldown(t *testing.T) {
	g, _, audio := newTestGame(t)

	g.Step(Input{Fire: true})
	g.Step(Input{Fire: true})

	if g.HarpoonCount() != 1 {
		t.Errorf("harpoons = %d, want 1", g.HarpoonCount())
	}
	if audio.fired != 1 {
		t.Errorf("fire cues = %d, want 1", audio.fired)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g, _, _ := newTestGame(t)

	g.Step(Input{Pause: true})
	tick, left := g.Tick(), g.Session().RemainingTime
	g.Step(Input{})
	g.Step(Input{})

	if g.Tick() != tick || g.Session().RemainingTime != left {
		t.Error("simulation advanced while paused")
	}

	g.Step(Input{Pause: true})
	if g.Paused() || g.Tick() != tick+1 {
		t.Errorf("paused=%v tick=%d after unpause", g.Paused(), g.Tick())
	}
}

func TestSpawnBallUsesPalette(t *testing.T) {
	g, _, _ := newTestGame(t)
	e := g.SpawnBall(2, 1, 1)
	_, _, _, ball := g.ballMapper.Get(e)

	found := false
	for _, c := range g.cfg.Palette {
		if c.R == ball.Color.R && c.G == ball.Color.G && c.B == ball.Color.B {
			found = true
		}
	}
	if !found {
		t.Errorf("colour %+v not in palette", ball.Color)
	}

	g.cfg.Palette = nil
	e = g.SpawnBall(2, 1, 1)
	_, _, _, ball = g.ballMapper.Get(e)
	if ball.Color != white {
		t.Errorf("empty palette colour = %+v, want white", ball.Color)
	}
}

func TestAutopilotRunStaysConsistent(t *testing.T) {
	g, _, _ := newTestGame(t)
	pilot := NewAutopilot(g.cfg.Autopilot)
	arena := g.Arena()

	for i := 0; i < 60*60; i++ {
		g.Step(pilot.Decide(g))

		s := g.Session()
		if s.Lives < 0 || s.Lives > g.cfg.Session.Lives {
			t.Fatalf("tick %d: lives = %d", i, s.Lives)
		}
		if s.Level < 1 || s.Level > g.cfg.Session.MaxLevel {
			t.Fatalf("tick %d: level = %d", i, s.Level)
		}
		for _, b := range g.Balls(nil) {
			if b.Size < 1 || !arena.Contains(b.X, b.Y, b.Radius) {
				t.Fatalf("tick %d: ball out of bounds: %+v", i, b)
			}
		}
	}
	if len(g.LevelHistory()) == 0 && g.Session().Score == 0 {
		t.Error("autopilot neither scored nor finished a level in a minute")
	}
}

func TestBuildLevelGeometry(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.cfg.Arena.MaxObstacles = 2

	for level := 1; level <= g.cfg.Session.MaxLevel; level++ {
		g.buildLevel(level)

		platforms := 0
		if lc := g.cfg.Derived.LevelsByID[level]; lc != nil {
			platforms = len(lc.Platforms)
		}
		want := 4 + platforms + min(level, 2)
		if len(g.surfaces) != want {
			t.Errorf("level %d: %d surfaces, want %d", level, len(g.surfaces), want)
		}
		if g.Background() != (level-1)%len(g.cfg.Backgrounds) {
			t.Errorf("level %d: background %d", level, g.Background())
		}
	}

	g.cfg.Backgrounds = nil
	g.buildLevel(1)
	if g.Background() != -1 {
		t.Errorf("background with none configured = %d, want -1", g.Background())
	}
}
