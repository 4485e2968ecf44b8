// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Health float64 `yaml:"health" json:"health"`
	Speed  float64 `yaml:"speed" json:"speed"`
	Reward int     `yaml:"reward" json:"reward"`
	Radius float64 `yaml:"radius" json:"radius"`
	Color  RGBA    `yaml:"color" json:"color"`
}
