// internal/defs/towers.go
package defs

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID             string  `yaml:"id" json:"id"`
	DisplayName    string  `yaml:"display_name" json:"display_name"`
	Prefab         string  `yaml:"prefab" json:"prefab"` // архетип в пуле; по умолчанию ID
	BuyPrice       int     `yaml:"buy_price" json:"buy_price"`
	SellPrice      int     `yaml:"sell_price" json:"sell_price"`
	AttackRange    float64 `yaml:"attack_range" json:"attack_range"`
	AttackInterval float64 `yaml:"attack_interval" json:"attack_interval"`
	Projectile     string  `yaml:"projectile" json:"projectile"`
	Fx             string  `yaml:"fx,omitempty" json:"fx,omitempty"` // "", "sparks", "catapult"
	Hotkey         string  `yaml:"hotkey,omitempty" json:"hotkey,omitempty"`
	Color          RGBA    `yaml:"color" json:"color"`
}

// Archetype returns the pool key for the tower.
func (d TowerDefinition) Archetype() string {
	if d.Prefab != "" {
		return d.Prefab
	}
	return d.ID
}

// ProjectileDefinition описывает снаряд и его модель полёта.
type ProjectileDefinition struct {
	ID                  string      `yaml:"id" json:"id"`
	Motion              MotionModel `yaml:"motion" json:"motion"`
	ImpactDamage        float64     `yaml:"impact_damage" json:"impact_damage"`
	DamageRadius        float64     `yaml:"damage_radius" json:"damage_radius"` // 0 — только прямое попадание
	Speed               float64     `yaml:"speed" json:"speed"`
	Radius              float64     `yaml:"radius" json:"radius"`
	AutoKill            float64     `yaml:"auto_kill" json:"auto_kill"`
	FireAheadMultiplier float64     `yaml:"fire_ahead_multiplier" json:"fire_ahead_multiplier"`
	Impact              string      `yaml:"impact,omitempty" json:"impact,omitempty"`
	Color               RGBA        `yaml:"color" json:"color"`
}

// ImpactDefinition — короткоживущий эффект попадания.
type ImpactDefinition struct {
	ID       string  `yaml:"id" json:"id"`
	Duration float64 `yaml:"duration" json:"duration"`
	Radius   float64 `yaml:"radius" json:"radius"`
	Color    RGBA    `yaml:"color" json:"color"`
}
