package dump

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	PathColor ColorAttr = iota
	KindColor
	ValueColor
	StringColor
	TypeColor
	SepColor
	VacantColor
	StaleColor
	AddColor
	DelColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[PathColor] = color.RGB(196, 96, 16).SprintfFunc()
	colors.Map[KindColor] = color.RGB(74, 92, 138).SprintfFunc()
	colors.Map[ValueColor] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[StringColor] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[TypeColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[SepColor] = color.RGB(255, 0, 196).SprintfFunc()
	colors.Map[VacantColor] = color.RGB(96, 96, 96).SprintfFunc()
	colors.Map[StaleColor] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[AddColor] = color.GreenString
	colors.Map[DelColor] = color.RedString
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	if c == nil {
		return colorDefault
	}
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
