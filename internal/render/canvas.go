package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ink is the color class of one preview cell.
type ink uint8

const (
	inkDefault ink = iota
	inkAir
	inkGround
	inkHazard
	inkPlatform
	inkSoft
	inkMedium
	inkHard
	inkReinforced
	inkIndestructible
	inkEnemy
	inkBoss
	inkWeapon
	inkReward
	inkCheckpoint
	inkEndpoint
	inkRuler
)

type cell struct {
	r   rune
	ink ink
}

// canvas is a 2D character buffer. Drawing is clipped to its bounds.
type canvas struct {
	width  int
	height int
	cells  [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.cells = make([][]cell, height)
	for y := range c.cells {
		c.cells[y] = make([]cell, width)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
	return c
}

// set places a rune at (x, y). Out-of-bounds coordinates are ignored.
func (c *canvas) set(x, y int, r rune, k ink) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, ink: k}
}

func (c *canvas) get(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y][x].r
}

// drawText writes text starting at (x, y), clipped at the right edge.
func (c *canvas) drawText(x, y int, text string, k ink) {
	i := 0
	for _, r := range text {
		c.set(x+i, y, r, k)
		i++
	}
}

// String joins the rows with newlines, dropping trailing spaces.
func (c *canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)
	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(c.row(y))
	}
	return sb.String()
}

func (c *canvas) row(y int) string {
	runes := make([]rune, c.used(y))
	for x := range runes {
		runes[x] = c.cells[y][x].r
	}
	return string(runes)
}

// used returns the width of row y without trailing spaces.
func (c *canvas) used(y int) int {
	n := c.width
	for n > 0 && c.cells[y][n-1].r == ' ' {
		n--
	}
	return n
}

// styled renders the buffer through theme. Adjacent cells with the same
// ink are grouped into one styled run to keep escape sequences short.
func (c *canvas) styled(theme Theme) string {
	var sb strings.Builder
	sb.Grow(c.width*c.height*2 + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		end := c.used(y)
		x := 0
		for x < end {
			start := c.cells[y][x].ink
			var run strings.Builder
			for x < end && c.cells[y][x].ink == start {
				run.WriteRune(c.cells[y][x].r)
				x++
			}
			sb.WriteString(theme.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// Theme holds the lipgloss styles used by Styled.
type Theme struct {
	Air            lipgloss.Style
	Ground         lipgloss.Style
	Hazard         lipgloss.Style
	Platform       lipgloss.Style
	Soft           lipgloss.Style
	Medium         lipgloss.Style
	Hard           lipgloss.Style
	Reinforced     lipgloss.Style
	Indestructible lipgloss.Style
	Enemy          lipgloss.Style
	Boss           lipgloss.Style
	Weapon         lipgloss.Style
	Reward         lipgloss.Style
	Checkpoint     lipgloss.Style
	Endpoint       lipgloss.Style
	Ruler          lipgloss.Style
}

// DefaultTheme returns the default preview colors.
func DefaultTheme() Theme {
	return Theme{
		Air:            lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		Ground:         lipgloss.NewStyle().Foreground(lipgloss.Color("130")), // Brown
		Hazard:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Platform:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Soft:           lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		Medium:         lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
		Hard:           lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Reinforced:     lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		Indestructible: lipgloss.NewStyle().Foreground(lipgloss.Color("93")).Bold(true),
		Enemy:          lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Boss:           lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Weapon:         lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Reward:         lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		Checkpoint:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Endpoint:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		Ruler:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (t Theme) style(k ink) lipgloss.Style {
	switch k {
	case inkAir:
		return t.Air
	case inkGround:
		return t.Ground
	case inkHazard:
		return t.Hazard
	case inkPlatform:
		return t.Platform
	case inkSoft:
		return t.Soft
	case inkMedium:
		return t.Medium
	case inkHard:
		return t.Hard
	case inkReinforced:
		return t.Reinforced
	case inkIndestructible:
		return t.Indestructible
	case inkEnemy:
		return t.Enemy
	case inkBoss:
		return t.Boss
	case inkWeapon:
		return t.Weapon
	case inkReward:
		return t.Reward
	case inkCheckpoint:
		return t.Checkpoint
	case inkEndpoint:
		return t.Endpoint
	case inkRuler:
		return t.Ruler
	default:
		return lipgloss.NewStyle()
	}
}
