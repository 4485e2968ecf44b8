// internal/assets/fonts.go
package assets

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"go-towerino/pkg/logger"
)

// FontManager загружает и кэширует шрифты HUD по размеру.
// Без TTF-файла используется встроенный basicfont (один размер, масштабируется при отрисовке).
type FontManager struct {
	ttf   *opentype.Font
	faces map[float64]font.Face
	log   *logrus.Entry
}

func NewFontManager() *FontManager {
	return &FontManager{
		faces: make(map[float64]font.Face),
		log:   logger.Log.WithField("component", "assets"),
	}
}

// LoadTTF подключает TTF-шрифт. Ошибка не фатальна: вызывающий может остаться на basicfont.
func (m *FontManager) LoadTTF(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("assets: read font %s: %w", path, err)
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("assets: parse font %s: %w", path, err)
	}
	m.ttf = tt
	m.faces = make(map[float64]font.Face)
	m.log.WithField("path", path).Info("font loaded")
	return nil
}

// Face возвращает шрифт размера size и множитель, с которым его надо рисовать.
func (m *FontManager) Face(size float64) (font.Face, float64) {
	if m.ttf == nil {
		return m.basic(), size / float64(basicfont.Face7x13.Height)
	}
	if f, ok := m.faces[size]; ok {
		return f, 1
	}
	face, err := opentype.NewFace(m.ttf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		m.log.WithError(err).WithField("size", size).Warn("font face failed, falling back to basicfont")
		return m.basic(), size / float64(basicfont.Face7x13.Height)
	}
	m.faces[size] = face
	return face, 1
}

func (m *FontManager) basic() font.Face {
	return basicfont.Face7x13
}
