package main

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/brawler/ai"
	"github.com/milk9111/brawler/match"
)

var (
	panelColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	pickedColor = color.NRGBA{R: 0x22, G: 0x66, B: 0xaa, A: 255}
	labelColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	errorColor  = color.NRGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff}
)

// Menu holds the start, pause, and game-over screens.
type Menu struct {
	g    *Game
	face ebtext.Face

	start *ebitenui.UI
	pause *ebitenui.UI
	over  *ebitenui.UI

	character  *widget.Text
	element    *widget.Text
	difficulty *widget.Text
	message    *widget.Text
	outcome    *widget.Text
}

func NewMenu(g *Game) *Menu {
	m := &Menu{g: g, face: ebtext.NewGoXFace(basicfont.Face7x13)}
	m.start = m.buildStart()
	m.pause = m.buildPause()
	m.over = m.buildOver()
	m.Refresh()
	return m
}

func (m *Menu) text(label string, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &m.face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (m *Menu) button(label string, img color.NRGBA, onClick func()) *widget.Button {
	nine := imageui.NewNineSliceColor(img)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: nine, Pressed: nine}),
		widget.ButtonOpts.Text(label, &m.face, &widget.ButtonTextColor{Idle: labelColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (m *Menu) row(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
	c := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	for _, child := range children {
		c.AddChild(child)
	}
	return c
}

// panel centers a vertical stack of widgets on the screen.
func (m *Menu) panel(children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(m.g.cfg.Window.Width/2, m.g.cfg.Window.Height/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	for _, child := range children {
		panel.AddChild(child)
	}
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func (m *Menu) buildStart() *ebitenui.UI {
	m.character = m.text("", labelColor)
	m.element = m.text("", labelColor)
	m.difficulty = m.text("", labelColor)
	m.message = m.text("", errorColor)

	g := m.g
	ids := g.bundle.Roster.CharacterIDs()
	nextCharacter := m.button("Change", buttonColor, func() {
		g.setup.Character = cycle(ids, g.setup.Character)
		m.Refresh()
	})
	var elements []widget.PreferredSizeLocateableWidget
	for _, el := range g.bundle.Roster.Elements {
		id := el.ID
		elements = append(elements, m.button(strings.ToUpper(id), pickedColor, func() {
			g.setup.Element = id
			m.message.Label = ""
			m.Refresh()
		}))
	}
	nextDifficulty := m.button("Change", buttonColor, func() {
		g.setup.Difficulty = (g.setup.Difficulty + 1) % ai.Difficulty(len(ai.Difficulties()))
		m.Refresh()
	})
	fight := m.button("FIGHT!", pickedColor, func() {
		if err := g.startMatch(); err != nil {
			m.message.Label = errorMessage(err)
			return
		}
		m.message.Label = ""
	})

	return m.panel(
		m.text("STICKMAN BRAWLER", labelColor),
		m.row(m.character, nextCharacter),
		m.row(append([]widget.PreferredSizeLocateableWidget{m.element}, elements...)...),
		m.row(m.difficulty, nextDifficulty),
		m.message,
		fight,
		m.text("A/D move  S block  SPACE jump  J punch  K kick  Q/W/E powers  P pause", labelColor),
	)
}

func (m *Menu) buildPause() *ebitenui.UI {
	return m.panel(
		m.text("Paused", labelColor),
		m.button("Resume", buttonColor, func() {
			if m.g.match != nil && m.g.match.Paused() {
				m.g.match.TogglePause()
			}
		}),
		m.button("Quit to menu", buttonColor, m.g.backToMenu),
	)
}

func (m *Menu) buildOver() *ebitenui.UI {
	m.outcome = m.text("", labelColor)
	return m.panel(
		m.outcome,
		m.button("Rematch", buttonColor, func() {
			if m.g.match != nil {
				m.g.match.Restart()
			}
		}),
		m.button("Main Menu", pickedColor, m.g.backToMenu),
	)
}

// Refresh copies the current choices and outcome into the labels.
func (m *Menu) Refresh() {
	g := m.g
	name := g.setup.Character
	if ch, err := g.bundle.Roster.Character(name); err == nil {
		name = ch.Name
	}
	m.character.Label = "Character: " + name
	element := "-"
	if g.setup.Element != "" {
		element = strings.ToUpper(g.setup.Element)
	}
	m.element.Label = "Element: " + element
	m.difficulty.Label = "Difficulty: " + g.setup.Difficulty.String()
	if g.match != nil {
		m.outcome.Label = string(g.match.State().Outcome)
	}
}

func cycle(ids []string, current string) string {
	for i, id := range ids {
		if id == current {
			return ids[(i+1)%len(ids)]
		}
	}
	if len(ids) == 0 {
		return current
	}
	return ids[0]
}

func errorMessage(err error) string {
	if errors.Is(err, match.ErrNoElement) {
		return match.NoElementMessage
	}
	return fmt.Sprintf("Cannot start: %v", err)
}
