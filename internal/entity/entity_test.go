package entity

import (
	"math"
	"os"
	"testing"

	"github.com/jakecoffman/cp"

	"go-towerino/internal/defs"
	"go-towerino/pkg/hexmap"
	"go-towerino/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// straightNav ведёт врага напрямую к цели.
type straightNav struct{}

func (straightNav) Route(_, to cp.Vector, _ hexmap.LaneMask) ([]cp.Vector, error) {
	return []cp.Vector{to}, nil
}

type recordingHooks struct {
	removed int
	rewards []int
	hits    int
}

func (h *recordingHooks) RemoveEnemy() error {
	h.removed++
	return nil
}

func (h *recordingHooks) EnemyReward(amount int, _ cp.Vector) {
	h.rewards = append(h.rewards, amount)
}

func (h *recordingHooks) EnemyHit(cp.Vector) { h.hits++ }

func testLibrary() *defs.Library {
	return &defs.Library{
		Towers: map[string]defs.TowerDefinition{
			"ballista": {ID: "ballista", BuyPrice: 100, SellPrice: 60, AttackRange: 130, AttackInterval: 1, Projectile: "arrow"},
			"firebomb": {ID: "firebomb", BuyPrice: 200, SellPrice: 120, AttackRange: 180, AttackInterval: 3, Projectile: "fireball", Fx: "catapult"},
			"mortar":   {ID: "mortar", AttackRange: 100, AttackInterval: 1, Projectile: "dud"},
			"bombard":  {ID: "bombard", AttackRange: 130, AttackInterval: 1, Projectile: "shell"},
		},
		TowerOrder: []string{"ballista", "firebomb", "mortar", "bombard"},
		Projectiles: map[string]defs.ProjectileDefinition{
			"arrow":    {ID: "arrow", Motion: defs.MotionStraight, ImpactDamage: 6, Speed: 420, Radius: 3, AutoKill: 5, Impact: "spark"},
			"fireball": {ID: "fireball", Motion: defs.MotionBallistic, ImpactDamage: 14, DamageRadius: 55, Radius: 6, AutoKill: 5, FireAheadMultiplier: 0.5, Impact: "fire"},
			"dud":      {ID: "dud", Motion: defs.MotionStraight, ImpactDamage: 1, Speed: 1, Radius: 2, AutoKill: 0.5},
			"shell":    {ID: "shell", Motion: defs.MotionStraight, ImpactDamage: 10, DamageRadius: 30, Speed: 420, Radius: 3, AutoKill: 5},
		},
		Impacts: map[string]defs.ImpactDefinition{
			"spark": {ID: "spark", Duration: 0.2},
			"fire":  {ID: "fire", Duration: 0.8},
		},
		Enemies: map[string]defs.EnemyDefinition{
			"grunt": {ID: "grunt", Health: 10, Speed: 40, Reward: 10, Radius: 9},
			"wall":  {ID: "wall", Health: 1000, Speed: 0, Reward: 1, Radius: 9},
		},
	}
}

func newTestWorld(t *testing.T) (*World, *recordingHooks) {
	t.Helper()
	w := NewWorld(testLibrary(), straightNav{})
	hooks := &recordingHooks{}
	w.Hooks = hooks
	return w, hooks
}

func spawnEnemy(t *testing.T, w *World, archetype string, pos cp.Vector) *Enemy {
	t.Helper()
	e, err := w.Enemies.Acquire(archetype)
	if err != nil {
		t.Fatalf("Acquire(%s) failed: %v", archetype, err)
	}
	if err := e.TurnOn(pos, cp.Vector{X: 1000, Y: pos.Y}, hexmap.LaneBoth); err != nil {
		t.Fatalf("TurnOn failed: %v", err)
	}
	return e
}

func placeTower(t *testing.T, w *World, archetype string, pos cp.Vector) (*Tower, *Base) {
	t.Helper()
	base := NewBase(defs.BaseDefinition{ID: "b1"}, pos)
	tower, err := w.Towers.Acquire(archetype)
	if err != nil {
		t.Fatalf("Acquire(%s) failed: %v", archetype, err)
	}
	if err := tower.TurnOn(base); err != nil {
		t.Fatalf("TurnOn failed: %v", err)
	}
	base.SetTower(tower, archetype)
	w.Anim.Update(0.5) // анимация появления
	if !tower.Ready() {
		t.Fatalf("Expected tower to be ready after arming, got state %v", tower.State)
	}
	return tower, base
}

// step — упрощённый тик: анимации, башни, снаряды.
func step(w *World, dt float64) {
	w.Anim.Update(dt)
	w.Physics.Step(dt)
	w.Towers.Each(func(t *Tower) { t.Update(dt) })
	w.Projectiles.Each(func(p *Projectile) { p.Update(dt) })
}

func TestSplashDamage(t *testing.T) {
	tests := []struct {
		name          string
		dmg, r, d     float64
		expectedValue float64
	}{
		{"center", 10, 3, 0, 10},
		{"half radius", 10, 3, 1.5, 5},
		{"edge", 10, 3, 3, 0},
		{"outside", 10, 3, 7, 0},
		{"negative distance clamps", 10, 3, -1, 10},
		{"no radius", 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplashDamage(tt.dmg, tt.r, tt.d)
			if math.Abs(got-tt.expectedValue) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expectedValue, got)
			}
		})
	}

	prev := SplashDamage(10, 3, 0)
	for d := 0.1; d <= 3; d += 0.1 {
		cur := SplashDamage(10, 3, d)
		if cur > prev {
			t.Errorf("Expected splash damage to be non-increasing, got %v after %v at d=%v", cur, prev, d)
		}
		prev = cur
	}
}

func TestEnemyRewardedExactlyOnce(t *testing.T) {
	w, hooks := newTestWorld(t)
	e := spawnEnemy(t, w, "grunt", cp.Vector{X: 10, Y: 10})

	e.ApplyDamage(6)
	if e.Health.Current != 4 {
		t.Errorf("Expected health 4, got %v", e.Health.Current)
	}
	e.ApplyDamage(6)
	e.ApplyDamage(6)

	if hooks.removed != 1 {
		t.Errorf("Expected enemy removed once, got %d", hooks.removed)
	}
	if len(hooks.rewards) != 1 || hooks.rewards[0] != 10 {
		t.Errorf("Expected a single reward of 10, got %v", hooks.rewards)
	}
	if e.Health.Current != 0 {
		t.Errorf("Expected health to floor at 0, got %v", e.Health.Current)
	}
	if e.State != EnemyDying {
		t.Errorf("Expected dying state, got %v", e.State)
	}

	w.Anim.Update(1.1)
	if w.Enemies.ActiveCount() != 0 {
		t.Errorf("Expected enemy back in the pool after dissolve, got %d active", w.Enemies.ActiveCount())
	}
	if w.HealthBars.ActiveCount() != 0 {
		t.Errorf("Expected health bar released, got %d active", w.HealthBars.ActiveCount())
	}
}

func TestArrivedEnemyIsImmune(t *testing.T) {
	w, hooks := newTestWorld(t)
	e := spawnEnemy(t, w, "grunt", cp.Vector{})

	e.SetReachedDestination(true)
	e.ApplyDamage(100)

	if e.Health.Current != 10 {
		t.Errorf("Expected health 10, got %v", e.Health.Current)
	}
	if hooks.removed != 0 || len(hooks.rewards) != 0 {
		t.Errorf("Expected no removal or reward, got %d removals and %v rewards", hooks.removed, hooks.rewards)
	}
}

func TestClaimRemovalLatch(t *testing.T) {
	w, _ := newTestWorld(t)
	e := spawnEnemy(t, w, "grunt", cp.Vector{})
	if !e.ClaimRemoval() {
		t.Errorf("Expected first claim to succeed")
	}
	if e.ClaimRemoval() {
		t.Errorf("Expected second claim to fail")
	}

	// новая аренда сбрасывает защёлку
	e.TurnOff(true)
	e = spawnEnemy(t, w, "grunt", cp.Vector{})
	if !e.ClaimRemoval() {
		t.Errorf("Expected claim to succeed after reuse")
	}
}

func TestDisposeReachedReleasesAfterAnimation(t *testing.T) {
	w, hooks := newTestWorld(t)
	e := spawnEnemy(t, w, "grunt", cp.Vector{})
	e.DisposeReached()
	if e.State != EnemyArriving {
		t.Errorf("Expected arriving state, got %v", e.State)
	}
	for i := 0; i < 10; i++ {
		w.Anim.Update(0.05)
	}
	if w.Enemies.ActiveCount() != 0 {
		t.Errorf("Expected enemy released, got %d active", w.Enemies.ActiveCount())
	}
	if hooks.removed != 0 {
		t.Errorf("Expected arrival path to leave the counter to the scheduler, got %d removals", hooks.removed)
	}
}

func TestTowerKeepsSingleReadyProjectile(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, _ := placeTower(t, w, "ballista", cp.Vector{})

	if tower.Projectile() == nil {
		t.Fatalf("Expected a ready projectile after arming")
	}
	tower.readyProjectile()
	tower.readyProjectile()
	if got := w.Projectiles.ActiveCount(); got != 1 {
		t.Errorf("Expected 1 active projectile, got %d", got)
	}
}

func TestTowerTargetsClosestEnemy(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, _ := placeTower(t, w, "ballista", cp.Vector{})

	far := spawnEnemy(t, w, "wall", cp.Vector{X: 100})
	near := spawnEnemy(t, w, "wall", cp.Vector{X: -40})
	spawnEnemy(t, w, "wall", cp.Vector{X: 200}) // вне радиуса

	tower.Update(0.01)
	got, ok := tower.Target()
	if !ok || got != near {
		t.Errorf("Expected the nearest enemy to be targeted, got %v (ok=%v)", got, ok)
	}

	// цель удерживается, пока она валидна
	far.SetPosition(cp.Vector{X: 5})
	w.Physics.Step(0.01)
	tower.Update(0.01)
	if got, _ := tower.Target(); got != near {
		t.Errorf("Expected tower to keep its target while valid")
	}
	if tower.HasNoTarget() {
		t.Errorf("Expected a valid target")
	}

	near.SetReachedDestination(true)
	if !tower.HasNoTarget() {
		t.Errorf("Expected arrived enemy to stop being a target")
	}
}

func TestTowerFireRate(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, _ := placeTower(t, w, "ballista", cp.Vector{})
	spawnEnemy(t, w, "wall", cp.Vector{X: 60})

	const dt = 0.05
	for i := 0; i < 200; i++ { // 10 секунд
		step(w, dt)
		if got := w.Projectiles.ActiveCount(); got > 3 {
			t.Fatalf("Expected few projectiles in flight, got %d", got)
		}
	}
	// первый выстрел после полного интервала, дальше не чаще раза в секунду
	if tower.ShotsFired < 8 || tower.ShotsFired > 10 {
		t.Errorf("Expected about 9 shots in 10 seconds, got %d", tower.ShotsFired)
	}
}

func TestArrowDirectHit(t *testing.T) {
	w, hooks := newTestWorld(t)
	tower, _ := placeTower(t, w, "ballista", cp.Vector{})
	e := spawnEnemy(t, w, "wall", cp.Vector{X: 60})

	p := tower.Projectile()
	tower.projectile = nil
	p.Fire(e)
	for i := 0; i < 10 && !p.HitDetected(); i++ {
		p.Update(0.05)
	}
	if !p.HitDetected() {
		t.Fatalf("Expected projectile to hit")
	}
	if e.Health.Current != 994 {
		t.Errorf("Expected health 994, got %v", e.Health.Current)
	}
	if hooks.hits != 1 {
		t.Errorf("Expected 1 hit event, got %d", hooks.hits)
	}
	if w.Impacts.ActiveCount() != 1 {
		t.Errorf("Expected impact effect, got %d", w.Impacts.ActiveCount())
	}
}

func TestProjectileSplashResolve(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, _ := placeTower(t, w, "bombard", cp.Vector{})
	direct := spawnEnemy(t, w, "wall", cp.Vector{X: 60})
	side := spawnEnemy(t, w, "wall", cp.Vector{X: 60, Y: 20})
	far := spawnEnemy(t, w, "wall", cp.Vector{X: 60, Y: 80})

	p := tower.Projectile()
	tower.projectile = nil
	p.Fire(direct)
	for i := 0; i < 10 && !p.HitDetected(); i++ {
		p.Update(0.05)
	}
	if !p.HitDetected() {
		t.Fatalf("Expected projectile to hit")
	}

	if direct.Health.Current != 990 {
		t.Errorf("Expected direct target to take full damage, got health %v", direct.Health.Current)
	}
	d := p.Position.Distance(side.Position)
	want := 1000 - SplashDamage(10, 30, d)
	if want >= 1000 {
		t.Fatalf("Expected side enemy inside the splash, got distance %v", d)
	}
	if math.Abs(side.Health.Current-want) > 1e-9 {
		t.Errorf("Expected side health %v, got %v", want, side.Health.Current)
	}
	if far.Health.Current != 1000 {
		t.Errorf("Expected far enemy untouched, got health %v", far.Health.Current)
	}
}

func TestProjectileSkipsEnemyItFliesOver(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, _ := placeTower(t, w, "ballista", cp.Vector{})
	under := spawnEnemy(t, w, "wall", cp.Vector{X: 20})
	target := spawnEnemy(t, w, "wall", cp.Vector{X: 90})

	p := tower.Projectile()
	tower.projectile = nil
	p.Fire(target)

	// пикирует с высоты 100 до земли: над первым врагом снаряд ещё слишком высоко
	p.Position, p.Altitude = cp.Vector{X: 100}, 0
	p.detectContact(cp.Vector{}, 100)

	if !p.HitDetected() {
		t.Fatalf("Expected a hit on the second enemy")
	}
	if under.Health.Current != 1000 {
		t.Errorf("Expected enemy below the flight path untouched, got health %v", under.Health.Current)
	}
	if target.Health.Current != 994 {
		t.Errorf("Expected health 994, got %v", target.Health.Current)
	}
}

func readyProjectiles(w *World) int {
	n := 0
	for _, p := range w.Projectiles.Snapshot() {
		if p.State == ProjectileReady {
			n++
		}
	}
	return n
}

func TestReusedTowerIgnoresPendingReload(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, base := placeTower(t, w, "ballista", cp.Vector{})
	spawnEnemy(t, w, "wall", cp.Vector{X: 60})

	for i := 0; i < 40 && tower.ShotsFired == 0; i++ {
		step(w, 0.05)
	}
	if tower.ShotsFired != 1 || tower.Projectile() != nil {
		t.Fatalf("Expected one shot with the reload pending, got %d shots", tower.ShotsFired)
	}

	tower.TurnOff(true)
	again, err := w.Towers.Acquire("ballista")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if again != tower {
		t.Fatalf("Expected the pool to reuse the released tower")
	}
	if err := again.TurnOn(base); err != nil {
		t.Fatalf("TurnOn failed: %v", err)
	}
	base.SetTower(again, "ballista")

	// время перезарядки прошло, но башня ещё появляется
	again.Update(0.6)
	if again.State != TowerArming || again.Projectile() != nil {
		t.Errorf("Expected arming tower without a projectile, got %v", again.State)
	}
	if got := readyProjectiles(w); got != 0 {
		t.Errorf("Expected no ready projectiles, got %d", got)
	}

	w.Anim.Update(0.5)
	if got := readyProjectiles(w); got != 1 || again.Projectile() == nil {
		t.Errorf("Expected exactly one ready projectile after arming, got %d", got)
	}
	if again.ShotsFired != 0 {
		t.Errorf("Expected shot counter reset, got %d", again.ShotsFired)
	}
}

func TestReusedEnemyIgnoresStaleDissolve(t *testing.T) {
	w, hooks := newTestWorld(t)
	e := spawnEnemy(t, w, "grunt", cp.Vector{})
	e.ApplyDamage(10)
	if e.State != EnemyDying {
		t.Fatalf("Expected dying enemy, got %v", e.State)
	}
	stale := leaseGuard(&e.Handle, func() { e.TurnOff(true) })

	// возврат в пул в обход TurnOff: растворение ещё числится в аниматоре
	if err := w.Enemies.Release(e); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	again := spawnEnemy(t, w, "grunt", cp.Vector{})
	if again != e {
		t.Fatalf("Expected the pool to reuse the released enemy")
	}

	w.Anim.Update(1.1)
	stale()
	if !again.Active() || again.State != EnemyAlive {
		t.Errorf("Expected the new lease to stay alive, got active=%v state=%v", again.Active(), again.State)
	}
	if again.Visual.Alpha != 1 {
		t.Errorf("Expected alpha 1, got %v", again.Visual.Alpha)
	}
	if hooks.removed != 1 {
		t.Errorf("Expected a single removal from the first lease, got %d", hooks.removed)
	}
}

func TestBallisticInvalidSolutionImpactsInPlace(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, _ := placeTower(t, w, "firebomb", cp.Vector{})
	e := spawnEnemy(t, w, "wall", cp.Vector{})

	p := tower.Projectile()
	tower.projectile = nil
	p.Fire(e)

	if !p.HitDetected() {
		t.Fatalf("Expected immediate impact for an invalid firing solution")
	}
	if p.State != ProjectileFading {
		t.Errorf("Expected fading projectile, got %v", p.State)
	}
	// сплэш в точке башни накрывает врага полностью
	if e.Health.Current != 986 {
		t.Errorf("Expected health 986, got %v", e.Health.Current)
	}
	if fx, ok := tower.Fx().(*CatapultFx); !ok || fx.Swing != 1 {
		t.Errorf("Expected catapult swing on fire")
	}
}

func TestBallisticVelocity(t *testing.T) {
	vx, vy, vz := BallisticVelocity(cp.Vector{}, 0, cp.Vector{X: 100}, 0, 10)
	if math.Abs(vx-vz) > 1e-9 || vy != 0 {
		t.Errorf("Expected a 45 degree launch, got (%v, %v, %v)", vx, vy, vz)
	}
	speed := math.Sqrt(vx*vx + vy*vy + vz*vz)
	if math.Abs(speed-math.Sqrt(1000)) > 1e-9 {
		t.Errorf("Expected speed %v, got %v", math.Sqrt(1000), speed)
	}

	vx, _, _ = BallisticVelocity(cp.Vector{}, 36, cp.Vector{X: 10}, 0, 10)
	if !math.IsNaN(vx) {
		t.Errorf("Expected NaN for an unreachable solution, got %v", vx)
	}
}

func TestProjectileAutoKill(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, _ := placeTower(t, w, "mortar", cp.Vector{})
	e := spawnEnemy(t, w, "wall", cp.Vector{X: 90})

	p := tower.Projectile()
	tower.projectile = nil
	p.Fire(e)
	for i := 0; i < 6; i++ {
		p.Update(0.1)
	}
	if p.State != ProjectileFading {
		t.Errorf("Expected projectile to fade after auto-kill, got %v", p.State)
	}
	if e.Health.Current != 1000 {
		t.Errorf("Expected no damage, got health %v", e.Health.Current)
	}
	w.Anim.Update(0.2)
	if p.Active() {
		t.Errorf("Expected projectile released after fading")
	}
}

func TestTowerTurnOffReleasesEverything(t *testing.T) {
	w, _ := newTestWorld(t)
	tower, base := placeTower(t, w, "ballista", cp.Vector{})

	tower.TurnOff(false)
	tower.TurnOff(false)
	if base.HasTower() {
		t.Errorf("Expected base to be free")
	}
	if w.Projectiles.ActiveCount() != 0 {
		t.Errorf("Expected ready projectile released, got %d", w.Projectiles.ActiveCount())
	}
	w.Anim.Update(0.5)
	if w.Towers.ActiveCount() != 0 {
		t.Errorf("Expected tower released, got %d", w.Towers.ActiveCount())
	}
}

func TestWorldResetAll(t *testing.T) {
	w, hooks := newTestWorld(t)
	placeTower(t, w, "ballista", cp.Vector{})
	e := spawnEnemy(t, w, "grunt", cp.Vector{X: 50})
	e.ApplyDamage(3)

	w.ResetAll()
	if n := w.Towers.ActiveCount() + w.Enemies.ActiveCount() + w.Projectiles.ActiveCount() + w.HealthBars.ActiveCount(); n != 0 {
		t.Errorf("Expected every pool empty, got %d active", n)
	}
	if hooks.removed != 0 {
		t.Errorf("Expected reset not to touch the enemy counter, got %d", hooks.removed)
	}
	if w.Anim.Len() != 0 {
		t.Errorf("Expected animations cleared, got %d", w.Anim.Len())
	}
}
