package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings — параметры запуска, которые можно переопределить файлом.
type Settings struct {
	HeadStartDuration   float64 `yaml:"head_start_duration"`
	WaveEndWaitDuration float64 `yaml:"wave_end_wait_duration"`
	LevelIntroDelay     float64 `yaml:"level_intro_delay"`
	StartingLives       int     `yaml:"starting_lives"`
	// PoolCeiling ограничивает число экземпляров одного архетипа; 0 — без ограничения.
	PoolCeiling int    `yaml:"pool_ceiling"`
	DefsDir     string `yaml:"defs_dir"`
	HotReload   bool   `yaml:"hot_reload"`
	Seed        int64  `yaml:"seed"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		HeadStartDuration:   HeadStartDuration,
		WaveEndWaitDuration: WaveEndWaitDuration,
		LevelIntroDelay:     LevelIntroDelay,
		StartingLives:       StartingLives,
		Seed:                1,
	}
}

// LoadSettings reads a YAML file over the defaults. Missing keys keep default values.
func LoadSettings(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	switch {
	case s.HeadStartDuration < 0:
		return fmt.Errorf("head_start_duration must be >= 0, got %v", s.HeadStartDuration)
	case s.WaveEndWaitDuration < 0:
		return fmt.Errorf("wave_end_wait_duration must be >= 0, got %v", s.WaveEndWaitDuration)
	case s.LevelIntroDelay < 0:
		return fmt.Errorf("level_intro_delay must be >= 0, got %v", s.LevelIntroDelay)
	case s.StartingLives <= 0:
		return fmt.Errorf("starting_lives must be > 0, got %d", s.StartingLives)
	case s.PoolCeiling < 0:
		return fmt.Errorf("pool_ceiling must be >= 0, got %d", s.PoolCeiling)
	}
	return nil
}
