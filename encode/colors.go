package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	StringColor
	NumberColor
	BoolColor
	NullColor
	SepColor
	AddedColor
	RemovedColor
	LocationColor
	ErrorColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			FieldColor:    color.RGB(128, 168, 196).SprintfFunc(),
			StringColor:   color.RGB(8, 196, 16).SprintfFunc(),
			NumberColor:   color.RGB(128, 216, 236).SprintfFunc(),
			BoolColor:     color.CyanString,
			NullColor:     color.RGB(168, 0, 196).SprintfFunc(),
			SepColor:      color.RGB(196, 128, 128).SprintfFunc(),
			AddedColor:    color.GreenString,
			RemovedColor:  color.RedString,
			LocationColor: color.New(color.Bold).SprintfFunc(),
			ErrorColor:    color.New(color.FgRed, color.Bold).SprintfFunc(),
		},
	}
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
