// internal/defs/levels.go
package defs

import "sort"

// Lighting передаётся презентации как есть.
type Lighting struct {
	Ambient   RGBA    `yaml:"ambient" json:"ambient"`
	Intensity float64 `yaml:"intensity" json:"intensity"`
	Skybox    string  `yaml:"skybox,omitempty" json:"skybox,omitempty"`
}

type SpawnPoint struct {
	Name string `yaml:"name" json:"name"`
	Cell `yaml:",inline"`
}

type BaseDefinition struct {
	ID   string `yaml:"id" json:"id"`
	Cell `yaml:",inline"`
}

// SpawnEvent — одно появление врага внутри волны.
type SpawnEvent struct {
	Archetype  string  `yaml:"archetype" json:"archetype"`
	TimeOffset float64 `yaml:"time_offset" json:"time_offset"`
	SpawnPoint string  `yaml:"spawn_point" json:"spawn_point"`
	Lane       Lane    `yaml:"lane" json:"lane"`
}

type WaveDefinition struct {
	SpawnEvents []SpawnEvent `yaml:"spawn_events" json:"spawn_events"`
}

// SortedEvents returns a copy ordered by TimeOffset; equal offsets keep file order.
func (w WaveDefinition) SortedEvents() []SpawnEvent {
	events := make([]SpawnEvent, len(w.SpawnEvents))
	copy(events, w.SpawnEvents)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimeOffset < events[j].TimeOffset
	})
	return events
}

// LevelDefinition — уровень кампании.
type LevelDefinition struct {
	Name        string           `yaml:"name" json:"name"`
	StartMoney  int              `yaml:"start_money" json:"start_money"`
	Lighting    Lighting         `yaml:"lighting" json:"lighting"`
	Map         []string         `yaml:"map" json:"map"`
	SpawnPoints []SpawnPoint     `yaml:"spawn_points" json:"spawn_points"`
	Destination Cell             `yaml:"destination" json:"destination"`
	Bases       []BaseDefinition `yaml:"bases" json:"bases"`
	Waves       []WaveDefinition `yaml:"waves" json:"waves"`
}

// SpawnPoint looks up a spawn point by name.
func (l LevelDefinition) SpawnPoint(name string) (SpawnPoint, bool) {
	for _, sp := range l.SpawnPoints {
		if sp.Name == name {
			return sp, true
		}
	}
	return SpawnPoint{}, false
}
