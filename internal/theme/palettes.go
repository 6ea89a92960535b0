package theme

import "github.com/fatih/color"

// fgExtended starts a 256-colour foreground sequence (38;5;n).
const fgExtended color.Attribute = 38

func fg256(n int, extra ...color.Attribute) Style {
	return append(Style{fgExtended, 5, color.Attribute(n)}, extra...)
}

func attrs(a ...color.Attribute) Style { return Style(a) }

var palettes = map[string]Palette{
	"default": {
		TokenKey:         attrs(color.FgYellow),
		TokenString:      attrs(color.FgGreen),
		TokenNumber:      attrs(color.FgCyan),
		TokenBool:        attrs(color.FgMagenta),
		TokenNull:        attrs(color.FgHiBlack),
		TokenPunctuation: attrs(color.FgWhite),
	},
	"solarized": {
		TokenKey:         attrs(color.FgYellow),
		TokenString:      attrs(color.FgGreen),
		TokenNumber:      attrs(color.FgBlue),
		TokenBool:        attrs(color.FgMagenta),
		TokenNull:        attrs(color.FgHiBlack),
		TokenPunctuation: attrs(color.FgWhite),
	},
	// mono uses weight only, no hues
	"mono": {
		TokenKey:         attrs(color.Bold),
		TokenString:      nil,
		TokenNumber:      nil,
		TokenBool:        attrs(color.Italic),
		TokenNull:        attrs(color.Faint),
		TokenPunctuation: attrs(color.Faint),
	},
	"rainbow": {
		TokenKey:         attrs(color.FgHiRed),
		TokenString:      attrs(color.FgHiGreen),
		TokenNumber:      attrs(color.FgHiYellow),
		TokenBool:        attrs(color.FgHiBlue),
		TokenNull:        attrs(color.FgHiMagenta),
		TokenPunctuation: attrs(color.FgHiCyan),
	},
	"ocean": {
		TokenKey:         fg256(39, color.Bold),
		TokenString:      fg256(86),
		TokenNumber:      fg256(45),
		TokenBool:        fg256(117),
		TokenNull:        fg256(60),
		TokenPunctuation: fg256(31),
	},
	"forest": {
		TokenKey:         fg256(142, color.Bold),
		TokenString:      fg256(107),
		TokenNumber:      fg256(178),
		TokenBool:        fg256(71),
		TokenNull:        fg256(58),
		TokenPunctuation: fg256(65),
	},
	"pastel": {
		TokenKey:         fg256(218),
		TokenString:      fg256(151),
		TokenNumber:      fg256(223),
		TokenBool:        fg256(183),
		TokenNull:        fg256(250),
		TokenPunctuation: fg256(195),
	},
	"sakura": {
		TokenKey:         fg256(211, color.Bold),
		TokenString:      fg256(225),
		TokenNumber:      fg256(218),
		TokenBool:        fg256(175),
		TokenNull:        fg256(244),
		TokenPunctuation: fg256(181),
	},
	"cyberpunk": {
		TokenKey:         fg256(201, color.Bold),
		TokenString:      fg256(51),
		TokenNumber:      fg256(226),
		TokenBool:        fg256(199),
		TokenNull:        fg256(93),
		TokenPunctuation: fg256(129),
	},
	"ghibli": {
		TokenKey:         fg256(110),
		TokenString:      fg256(150),
		TokenNumber:      fg256(180),
		TokenBool:        fg256(174),
		TokenNull:        fg256(145),
		TokenPunctuation: fg256(108),
	},
	// Unit-01 purple and green, warning orange, emergency red
	"evangelion": {
		TokenKey:         fg256(93, color.Bold),
		TokenString:      fg256(118),
		TokenNumber:      fg256(208),
		TokenBool:        fg256(196),
		TokenNull:        fg256(240),
		TokenPunctuation: fg256(135),
	},
}
