package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawGhost: true,
		Colors: ConfigColors{
			// red, yellow, green, blue, purple, orange, pink
			Blocks:     [7]int{203, 220, 112, 32, 97, 208, 205},
			Garbage:    245,
			Ghost:      240,
			Border:     60,
			Background: 234,
			Text:       255,
		},
		Symbols: ConfigSymbols{
			Block: '█',
			Ghost: '░',
			Empty: ' ',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameConfig{
			BoardWidth:  10,
			BoardHeight: 20,
			FPS:         60,
		},
	}
}
