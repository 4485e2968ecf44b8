// internal/defs/loader.go
package defs

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"go-towerino/pkg/hexmap"
	"go-towerino/pkg/logger"
)

//go:embed data
var embedded embed.FS

var (
	ErrUnknownTower = errors.New("defs: unknown tower type")
	ErrNotFound     = errors.New("defs: file not found")
)

// Library — все определения игры. Передаётся явно, глобального состояния нет.
type Library struct {
	Towers      map[string]TowerDefinition
	TowerOrder  []string // порядок из файла, для панели покупки
	Projectiles map[string]ProjectileDefinition
	Impacts     map[string]ImpactDefinition
	Enemies     map[string]EnemyDefinition
	Levels      []LevelDefinition
}

// Tower returns the definition for a tower type. Unknown types are reported as absent.
func (l *Library) Tower(id string) (TowerDefinition, bool) {
	d, ok := l.Towers[id]
	return d, ok
}

func (l *Library) Projectile(id string) (ProjectileDefinition, bool) {
	d, ok := l.Projectiles[id]
	return d, ok
}

func (l *Library) Impact(id string) (ImpactDefinition, bool) {
	d, ok := l.Impacts[id]
	return d, ok
}

func (l *Library) Enemy(id string) (EnemyDefinition, bool) {
	d, ok := l.Enemies[id]
	return d, ok
}

// Level возвращает уровень по номеру кампании (с единицы).
func (l *Library) Level(number int) (LevelDefinition, bool) {
	if number < 1 || number > len(l.Levels) {
		return LevelDefinition{}, false
	}
	return l.Levels[number-1], true
}

// LoadEmbedded loads the definitions shipped with the binary.
func LoadEmbedded() (*Library, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("defs: embedded data: %w", err)
	}
	return Load(sub)
}

// LoadDir loads definitions from a directory on disk.
func LoadDir(dir string) (*Library, error) {
	lib, err := Load(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("defs: load %s: %w", dir, err)
	}
	return lib, nil
}

// Load reads towers, projectiles, impacts, enemies and levels/* from fsys.
// Every file may be YAML or JSON; the format is chosen by extension.
func Load(fsys fs.FS) (*Library, error) {
	lib := &Library{
		Towers:      make(map[string]TowerDefinition),
		Projectiles: make(map[string]ProjectileDefinition),
		Impacts:     make(map[string]ImpactDefinition),
		Enemies:     make(map[string]EnemyDefinition),
	}

	towers, err := readList[TowerDefinition](fsys, "towers")
	if err != nil {
		return nil, err
	}
	for _, def := range towers {
		if _, dup := lib.Towers[def.ID]; dup {
			return nil, fmt.Errorf("defs: duplicate tower %q", def.ID)
		}
		lib.Towers[def.ID] = def
		lib.TowerOrder = append(lib.TowerOrder, def.ID)
	}

	projectiles, err := readList[ProjectileDefinition](fsys, "projectiles")
	if err != nil {
		return nil, err
	}
	for _, def := range projectiles {
		lib.Projectiles[def.ID] = def
	}

	impacts, err := readList[ImpactDefinition](fsys, "impacts")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	for _, def := range impacts {
		lib.Impacts[def.ID] = def
	}

	enemies, err := readList[EnemyDefinition](fsys, "enemies")
	if err != nil {
		return nil, err
	}
	for _, def := range enemies {
		lib.Enemies[def.ID] = def
	}

	levelFiles, err := fs.Glob(fsys, "levels/*")
	if err != nil {
		return nil, fmt.Errorf("defs: list levels: %w", err)
	}
	sort.Strings(levelFiles)
	for _, name := range levelFiles {
		if !isDataFile(name) {
			continue
		}
		var level LevelDefinition
		if err := readFile(fsys, name, &level); err != nil {
			return nil, err
		}
		if level.Name == "" {
			level.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
		}
		lib.Levels = append(lib.Levels, level)
	}

	if err := lib.Validate(); err != nil {
		return nil, err
	}

	logger.For("defs").WithFields(logrus.Fields{
		"towers":      len(lib.Towers),
		"projectiles": len(lib.Projectiles),
		"enemies":     len(lib.Enemies),
		"levels":      len(lib.Levels),
	}).Info("definitions loaded")
	return lib, nil
}

// Validate checks cross references between definitions.
func (l *Library) Validate() error {
	var errs []error
	if len(l.Towers) == 0 {
		errs = append(errs, errors.New("no towers defined"))
	}
	if len(l.Levels) == 0 {
		errs = append(errs, errors.New("no levels defined"))
	}
	for _, id := range l.TowerOrder {
		t := l.Towers[id]
		if t.AttackInterval <= 0 {
			errs = append(errs, fmt.Errorf("tower %q: attack_interval must be > 0", id))
		}
		if t.AttackRange <= 0 {
			errs = append(errs, fmt.Errorf("tower %q: attack_range must be > 0", id))
		}
		if t.BuyPrice < 0 || t.SellPrice < 0 {
			errs = append(errs, fmt.Errorf("tower %q: prices must be >= 0", id))
		}
		if _, ok := l.Projectiles[t.Projectile]; !ok {
			errs = append(errs, fmt.Errorf("tower %q: unknown projectile %q", id, t.Projectile))
		}
		switch t.Fx {
		case "", "sparks", "catapult":
		default:
			errs = append(errs, fmt.Errorf("tower %q: unknown fx %q", id, t.Fx))
		}
	}
	for id, p := range l.Projectiles {
		if p.Motion != MotionStraight && p.Motion != MotionBallistic {
			errs = append(errs, fmt.Errorf("projectile %q: unknown motion %q", id, p.Motion))
		}
		if p.DamageRadius < 0 {
			errs = append(errs, fmt.Errorf("projectile %q: damage_radius must be >= 0", id))
		}
		if p.Impact != "" {
			if _, ok := l.Impacts[p.Impact]; !ok {
				errs = append(errs, fmt.Errorf("projectile %q: unknown impact %q", id, p.Impact))
			}
		}
	}
	for id, e := range l.Enemies {
		if e.Health <= 0 {
			errs = append(errs, fmt.Errorf("enemy %q: health must be > 0", id))
		}
	}
	for i, level := range l.Levels {
		if err := l.validateLevel(level); err != nil {
			errs = append(errs, fmt.Errorf("level %d (%s): %w", i+1, level.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("defs: invalid definitions: %w", errors.Join(errs...))
	}
	return nil
}

func (l *Library) validateLevel(level LevelDefinition) error {
	m, err := level.BuildMap(1, cp.Vector{})
	if err != nil {
		return err
	}
	var errs []error
	onLane := func(c Cell) bool {
		t, ok := m.Tiles[hexmap.OffsetToHex(c.Col, c.Row)]
		return ok && t.Walkable()
	}
	if !onLane(level.Destination) {
		errs = append(errs, fmt.Errorf("destination %v is not on a lane", level.Destination))
	}
	for _, sp := range level.SpawnPoints {
		if !onLane(sp.Cell) {
			errs = append(errs, fmt.Errorf("spawn point %q is not on a lane", sp.Name))
		}
	}
	seen := make(map[string]bool)
	for _, b := range level.Bases {
		if seen[b.ID] {
			errs = append(errs, fmt.Errorf("duplicate base %q", b.ID))
		}
		seen[b.ID] = true
		if _, ok := m.Tiles[hexmap.OffsetToHex(b.Col, b.Row)]; !ok {
			errs = append(errs, fmt.Errorf("base %q is outside the map", b.ID))
		}
	}
	if len(level.Waves) == 0 {
		errs = append(errs, errors.New("no waves"))
	}
	for w, wave := range level.Waves {
		for _, ev := range wave.SpawnEvents {
			if _, ok := l.Enemies[ev.Archetype]; !ok {
				errs = append(errs, fmt.Errorf("wave %d: unknown enemy %q", w+1, ev.Archetype))
			}
			if _, ok := level.SpawnPoint(ev.SpawnPoint); !ok {
				errs = append(errs, fmt.Errorf("wave %d: unknown spawn point %q", w+1, ev.SpawnPoint))
			}
			if _, err := ev.Lane.Mask(); err != nil {
				errs = append(errs, fmt.Errorf("wave %d: %w", w+1, err))
			}
			if ev.TimeOffset < 0 {
				errs = append(errs, fmt.Errorf("wave %d: negative time_offset %v", w+1, ev.TimeOffset))
			}
		}
	}
	return errors.Join(errs...)
}

// BuildMap разбирает ASCII-карту уровня.
func (level LevelDefinition) BuildMap(hexSize float64, origin cp.Vector) (*hexmap.Map, error) {
	return hexmap.Parse(level.Map, hexSize, origin)
}

func readList[T any](fsys fs.FS, base string) ([]T, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		name := base + ext
		if _, err := fs.Stat(fsys, name); err != nil {
			continue
		}
		var out []T
		if err := readFile(fsys, name, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s.{yaml,json}", ErrNotFound, base)
}

func readFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("defs: read %s: %w", name, err)
	}
	if strings.EqualFold(path.Ext(name), ".json") {
		err = json.Unmarshal(data, v)
	} else {
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("defs: unmarshal %s: %w", name, err)
	}
	return nil
}

func isDataFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// TowerByArchetype finds the tower whose pool archetype is archetype.
func (l *Library) TowerByArchetype(archetype string) (TowerDefinition, bool) {
	if d, ok := l.Towers[archetype]; ok && d.Archetype() == archetype {
		return d, true
	}
	for _, id := range l.TowerOrder {
		if d := l.Towers[id]; d.Archetype() == archetype {
			return d, true
		}
	}
	return TowerDefinition{}, false
}
