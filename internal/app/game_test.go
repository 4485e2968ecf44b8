package app

import (
	"os"
	"testing"

	"go-towerino/internal/config"
	"go-towerino/internal/defs"
	"go-towerino/internal/event"
	"go-towerino/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func testLevel(name string, money int) defs.LevelDefinition {
	return defs.LevelDefinition{
		Name:       name,
		StartMoney: money,
		Map: []string{
			"aaaaa",
			".....",
		},
		SpawnPoints: []defs.SpawnPoint{{Name: "west", Cell: defs.Cell{Col: 0, Row: 0}}},
		Destination: defs.Cell{Col: 4, Row: 0},
		Bases:       []defs.BaseDefinition{{ID: "b1", Cell: defs.Cell{Col: 2, Row: 1}}},
		Waves: []defs.WaveDefinition{{SpawnEvents: []defs.SpawnEvent{
			{Archetype: "grunt", TimeOffset: 0, SpawnPoint: "west"},
		}}},
	}
}

func testLibrary() *defs.Library {
	return &defs.Library{
		Towers: map[string]defs.TowerDefinition{
			"ballista": {ID: "ballista", BuyPrice: 100, SellPrice: 60, AttackRange: 130, AttackInterval: 1, Projectile: "arrow"},
			"firebomb": {ID: "firebomb", BuyPrice: 200, SellPrice: 120, AttackRange: 180, AttackInterval: 3, Projectile: "fireball"},
		},
		TowerOrder: []string{"ballista", "firebomb"},
		Projectiles: map[string]defs.ProjectileDefinition{
			"arrow":    {ID: "arrow", Motion: defs.MotionStraight, ImpactDamage: 6, Speed: 420, Radius: 3, AutoKill: 5},
			"fireball": {ID: "fireball", Motion: defs.MotionBallistic, ImpactDamage: 14, DamageRadius: 55, Radius: 6, AutoKill: 5},
		},
		Impacts: map[string]defs.ImpactDefinition{},
		Enemies: map[string]defs.EnemyDefinition{
			"grunt": {ID: "grunt", Health: 1000, Speed: 60, Reward: 10, Radius: 9},
		},
		Levels: []defs.LevelDefinition{testLevel("first", 150), testLevel("second", 300)},
	}
}

func testSettings() config.Settings {
	s := config.Default()
	s.HeadStartDuration = 0
	s.WaveEndWaitDuration = 0
	s.LevelIntroDelay = 0
	return s
}

func newTestGame(t *testing.T, settings config.Settings) *Game {
	t.Helper()
	g, err := NewGame(settings, testLibrary())
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(g.Shutdown)
	return g
}

func countEvents(g *Game, types ...event.EventType) map[event.EventType]int {
	counts := make(map[event.EventType]int)
	for _, et := range types {
		et := et
		g.EventDispatcher.SubscribeFunc(et, func(event.Event) { counts[et]++ })
	}
	return counts
}

func TestBuyTowerScenario(t *testing.T) {
	g := newTestGame(t, testSettings())
	counts := countEvents(g, event.MoneyChanged, event.TowerPlaced)

	if g.Money() != 150 {
		t.Fatalf("Expected start money 150, got %d", g.Money())
	}
	if !g.BuyTower("ballista", "b1") {
		t.Fatalf("Expected BuyTower to succeed")
	}
	if g.Money() != 50 {
		t.Errorf("Expected money 50, got %d", g.Money())
	}
	base, _ := g.Base("b1")
	if !base.HasTower() || base.TowerType() != "ballista" {
		t.Errorf("Expected base to hold a ballista")
	}

	if g.BuyTower("ballista", "b1") {
		t.Errorf("Expected second BuyTower on an occupied base to be rejected")
	}
	if g.Money() != 50 {
		t.Errorf("Expected money to stay 50, got %d", g.Money())
	}
	if counts[event.MoneyChanged] != 1 || counts[event.TowerPlaced] != 1 {
		t.Errorf("Expected exactly one MoneyChanged and TowerPlaced, got %v", counts)
	}
}

func TestBuyTowerRejections(t *testing.T) {
	tests := []struct {
		name      string
		towerType string
		baseID    string
	}{
		{"unknown tower", "laser", "b1"},
		{"unknown base", "ballista", "nowhere"},
		{"not enough money", "firebomb", "b1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, testSettings())
			counts := countEvents(g, event.MoneyChanged, event.TowerPlaced)
			if g.BuyTower(tt.towerType, tt.baseID) {
				t.Errorf("Expected BuyTower to be rejected")
			}
			if g.Money() != 150 {
				t.Errorf("Expected money 150, got %d", g.Money())
			}
			if len(counts) != 0 {
				t.Errorf("Expected no events, got %v", counts)
			}
			if g.World.Towers.ActiveCount() != 0 {
				t.Errorf("Expected no towers, got %d", g.World.Towers.ActiveCount())
			}
		})
	}
}

func TestTowerDataUnknownType(t *testing.T) {
	g := newTestGame(t, testSettings())
	if _, ok := g.TowerData("laser"); ok {
		t.Errorf("Expected unknown tower type to be absent")
	}
	if def, ok := g.TowerData("ballista"); !ok || def.BuyPrice != 100 {
		t.Errorf("Expected ballista with price 100, got %+v (ok=%v)", def, ok)
	}
}

func TestSellTower(t *testing.T) {
	g := newTestGame(t, testSettings())
	if g.SellTower("b1") {
		t.Errorf("Expected selling from an empty base to be a no-op")
	}
	g.BuyTower("ballista", "b1")
	if !g.SellTower("b1") {
		t.Fatalf("Expected SellTower to succeed")
	}
	if g.Money() != 110 {
		t.Errorf("Expected money 110, got %d", g.Money())
	}
	base, _ := g.Base("b1")
	if base.HasTower() || base.TowerType() != "" {
		t.Errorf("Expected base to be empty, got %q", base.TowerType())
	}
	// база свободна сразу, пока старая башня ещё исчезает
	if !g.BuyTower("ballista", "b1") {
		t.Fatalf("Expected to buy on a just-sold base")
	}
	if !g.SellTower("b1") {
		t.Fatalf("Expected second sale to succeed")
	}
	for i := 0; i < 20; i++ {
		g.Update(0.05)
	}
	if g.World.Towers.ActiveCount() != 0 {
		t.Errorf("Expected tower back in the pool, got %d active", g.World.Towers.ActiveCount())
	}
}

func TestSelection(t *testing.T) {
	g := newTestGame(t, testSettings())
	counts := countEvents(g, event.TowerSelected, event.TowerDeselected)

	g.SelectBase("b1")
	g.SelectBase("b1")
	if g.SelectedBase() == nil || !g.SelectedBase().Selected {
		t.Fatalf("Expected b1 to be selected")
	}
	g.DeselectBase()
	g.DeselectBase()
	if g.SelectedBase() != nil {
		t.Errorf("Expected no selection")
	}
	if counts[event.TowerSelected] != 1 || counts[event.TowerDeselected] != 1 {
		t.Errorf("Expected one select and one deselect, got %v", counts)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, testSettings())
	g.PauseToggle()
	g.Update(1)
	if g.GameTime() != 0 {
		t.Errorf("Expected paused game time 0, got %v", g.GameTime())
	}
	if g.BuyTower("ballista", "b1") {
		t.Errorf("Expected buying to be refused while paused")
	}
	g.PauseToggle()
	g.Update(0.5)
	if g.GameTime() != 0.5 {
		t.Errorf("Expected game time 0.5, got %v", g.GameTime())
	}
}

func TestKillRewardsAndAdvancesCampaign(t *testing.T) {
	g := newTestGame(t, testSettings())
	counts := countEvents(g, event.RewardGranted, event.LevelCleared, event.CampaignCompleted)

	killWave := func() {
		t.Helper()
		g.Update(0.01) // спавн
		enemies := g.World.Enemies.Snapshot()
		if len(enemies) != 1 {
			t.Fatalf("Expected 1 enemy, got %d", len(enemies))
		}
		enemies[0].ApplyDamage(1000)
	}

	killWave()
	if g.Money() != 160 {
		t.Errorf("Expected money 160 after reward, got %d", g.Money())
	}
	for i := 0; i < 5 && g.LevelNumber() == 1; i++ {
		g.Update(0.01)
	}
	if g.LevelNumber() != 2 {
		t.Fatalf("Expected level 2, got %d", g.LevelNumber())
	}
	if g.Money() != 300 {
		t.Errorf("Expected level 2 start money 300, got %d", g.Money())
	}

	killWave()
	for i := 0; i < 5 && !g.IsCampaignCompleted(); i++ {
		g.Update(0.01)
	}
	if !g.IsCampaignCompleted() {
		t.Fatalf("Expected campaign completed")
	}
	if counts[event.RewardGranted] != 2 || counts[event.LevelCleared] != 2 || counts[event.CampaignCompleted] != 1 {
		t.Errorf("Expected 2 rewards, 2 level clears and 1 completion, got %v", counts)
	}

	if err := g.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if g.LevelNumber() != 1 || g.IsCampaignCompleted() {
		t.Errorf("Expected campaign to wrap to level 1")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	s := testSettings()
	s.StartingLives = 1
	g := newTestGame(t, s)
	counts := countEvents(g, event.GameOver, event.HealthChanged)

	for i := 0; i < 400 && !g.IsGameOver(); i++ {
		g.Update(0.05)
	}
	if !g.IsGameOver() {
		t.Fatalf("Expected game over after the enemy reached the destination")
	}
	if g.Lives() != 0 {
		t.Errorf("Expected 0 lives, got %d", g.Lives())
	}
	if counts[event.GameOver] != 1 || counts[event.HealthChanged] != 1 {
		t.Errorf("Expected one GameOver and one HealthChanged, got %v", counts)
	}
	if g.BuyTower("ballista", "b1") {
		t.Errorf("Expected buying to be refused after game over")
	}

	if err := g.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if g.IsGameOver() || g.Lives() != 1 || g.Money() != 150 {
		t.Errorf("Expected a fresh level, got gameOver=%v lives=%d money=%d", g.IsGameOver(), g.Lives(), g.Money())
	}
	if g.World.Enemies.ActiveCount() != 0 {
		t.Errorf("Expected enemies reset, got %d", g.World.Enemies.ActiveCount())
	}
}

func TestEnemyHitVariant(t *testing.T) {
	g := newTestGame(t, testSettings())
	var variants []int
	g.EventDispatcher.SubscribeFunc(event.EnemyHit, func(e event.Event) {
		variants = append(variants, e.Data.(event.HitData).Variant)
	})
	g.Update(0.01)
	e := g.World.Enemies.Snapshot()[0]
	for i := 0; i < 10; i++ {
		e.ApplyDamage(1)
	}
	if len(variants) != 10 {
		t.Fatalf("Expected 10 hit events, got %d", len(variants))
	}
	for _, v := range variants {
		if v < 0 || v >= config.HitSoundVariants {
			t.Errorf("Expected variant in [0,%d), got %d", config.HitSoundVariants, v)
		}
	}
}
