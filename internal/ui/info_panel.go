// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-towerino/internal/assets"
	"go-towerino/internal/config"
	"go-towerino/internal/defs"
	"go-towerino/pkg/render"
)

const (
	panelHeight    = 110
	panelMargin    = 5
	animationSpeed = 12.0
	buttonWidth    = 150
	buttonHeight   = 48
	buttonGap      = 12
)

// PanelAction — что игрок нажал на панели базы.
type PanelAction int

const (
	ActionNone PanelAction = iota
	ActionBuy
	ActionSell
)

type towerButton struct {
	*Button
	towerType string
	price     int
}

// BuySellPanel — выезжающая снизу панель выбранной базы: покупка на пустой
// базе, продажа на занятой.
type BuySellPanel struct {
	IsVisible bool
	BaseID    string

	fonts    *assets.FontManager
	currentY float64
	targetY  float64

	hasTower  bool
	title     string
	buy       []towerButton
	sell      *Button
	sellPrice int
}

// NewBuySellPanel создаёт панель с кнопками покупки в порядке towers.
func NewBuySellPanel(fonts *assets.FontManager, towers []defs.TowerDefinition) *BuySellPanel {
	p := &BuySellPanel{
		fonts:    fonts,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
	for k, def := range towers {
		b := NewButton(image.Rectangle{}, fmt.Sprintf("[%s] %s", def.Hotkey, def.DisplayName))
		b.Caption = fmt.Sprintf("$%d", def.BuyPrice)
		if def.Hotkey == "" {
			b.Text = fmt.Sprintf("[%d] %s", k+1, def.DisplayName)
		}
		b.BgColor = def.Color.Color()
		b.HoverColor = render.LightenColor(b.BgColor, 40)
		p.buy = append(p.buy, towerButton{Button: b, towerType: def.ID, price: def.BuyPrice})
	}
	p.sell = NewButton(image.Rectangle{}, "[S] Sell")
	p.sell.BgColor = color.RGBA{180, 140, 20, 255}
	p.sell.HoverColor = color.RGBA{210, 170, 40, 255}
	return p
}

// ShowBuy открывает панель покупки для пустой базы.
func (p *BuySellPanel) ShowBuy(baseID string) {
	p.BaseID = baseID
	p.hasTower = false
	p.title = "Build tower"
	p.show()
}

// ShowSell открывает панель продажи для базы с башней def.
func (p *BuySellPanel) ShowSell(baseID string, def defs.TowerDefinition) {
	p.BaseID = baseID
	p.hasTower = true
	p.title = def.DisplayName
	p.sellPrice = def.SellPrice
	p.sell.Caption = fmt.Sprintf("+$%d", def.SellPrice)
	p.show()
}

func (p *BuySellPanel) show() {
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
	p.layout()
}

func (p *BuySellPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// SetMoney блокирует кнопки башен, которые игрок не может купить.
func (p *BuySellPanel) SetMoney(money int) {
	for _, b := range p.buy {
		b.Disabled = b.price > money
	}
}

func (p *BuySellPanel) Update() {
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	switch {
	case math.Abs(diff) < animationSpeed:
		p.currentY = p.targetY
	case diff > 0:
		p.currentY += animationSpeed
	default:
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
		p.BaseID = ""
	}
	p.layout()
}

func (p *BuySellPanel) layout() {
	top := int(p.currentY) + (panelHeight-buttonHeight)/2 + 10
	if p.hasTower {
		left := config.ScreenWidth/2 - buttonWidth/2
		p.sell.Rect = image.Rect(left, top, left+buttonWidth, top+buttonHeight)
		return
	}
	total := len(p.buy)*buttonWidth + (len(p.buy)-1)*buttonGap
	left := config.ScreenWidth/2 - total/2
	for k, b := range p.buy {
		x := left + k*(buttonWidth+buttonGap)
		b.Rect = image.Rect(x, top, x+buttonWidth, top+buttonHeight)
	}
}

// HandleClick возвращает действие под курсором. Клик мимо кнопок — ActionNone.
func (p *BuySellPanel) HandleClick(x, y int) (PanelAction, string) {
	if !p.IsVisible || p.currentY != p.targetY {
		return ActionNone, ""
	}
	if p.hasTower {
		if p.sell.Contains(x, y) {
			return ActionSell, ""
		}
		return ActionNone, ""
	}
	for _, b := range p.buy {
		if b.Contains(x, y) && !b.Disabled {
			return ActionBuy, b.towerType
		}
	}
	return ActionNone, ""
}

// Contains — попадает ли точка на панель (клик по панели не снимает выбор базы).
func (p *BuySellPanel) Contains(x, y int) bool {
	return p.IsVisible && y >= int(p.currentY)+panelMargin
}

func (p *BuySellPanel) Draw(screen *ebiten.Image) {
	if !p.IsVisible {
		return
	}
	x := float32(panelMargin)
	y := float32(p.currentY) + panelMargin
	w := float32(config.ScreenWidth - 2*panelMargin)
	h := float32(panelHeight - 2*panelMargin)
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{25, 35, 45, 230}, true)
	vector.StrokeRect(screen, x, y, w, h, 2, color.RGBA{70, 130, 180, 255}, true)
	DrawLabel(screen, p.fonts, p.title, float64(x)+15, float64(y)+8, 16, config.TextLightColor, AlignStart)

	cx, cy := ebiten.CursorPosition()
	if p.hasTower {
		p.sell.Draw(screen, p.fonts, cx, cy, 1)
		return
	}
	for _, b := range p.buy {
		b.Draw(screen, p.fonts, cx, cy, 1)
	}
}
