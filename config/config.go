package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"
)

var (
	cfgFile = "termtris/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors holds 256-palette color indices for everything the board
// view draws. Blocks[i] is the color of grid value i+1.
type ConfigColors struct {
	Blocks     [7]int `json:"blocks"`
	Garbage    int    `json:"garbage"`
	Ghost      int    `json:"ghost"`
	Border     int    `json:"border"`
	Background int    `json:"background"`
	Text       int    `json:"text"`
}

type ConfigSymbols struct {
	Block rune `json:"block"`
	Ghost rune `json:"ghost"`
	Empty rune `json:"empty"`
}

type Theme struct {
	DrawGhost bool          `json:"draw_ghost"`
	Colors    ConfigColors  `json:"colors"`
	Symbols   ConfigSymbols `json:"symbols"`
}

// GameConfig holds gameplay defaults.
type GameConfig struct {
	BoardWidth  int `json:"board_width"`
	BoardHeight int `json:"board_height"`
	FPS         int `json:"fps"` // tick rate the gravity table counts in
}

type Config struct {
	Theme Theme      `json:"theme"`
	Game  GameConfig `json:"game"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		readCfgFile(absPath, &config)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Block, c.Theme.Symbols.Ghost, c.Theme.Symbols.Empty} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	colors := append(c.Theme.Colors.Blocks[:], c.Theme.Colors.Garbage, c.Theme.Colors.Ghost,
		c.Theme.Colors.Border, c.Theme.Colors.Background, c.Theme.Colors.Text)
	for _, col := range colors {
		if col < 0 || col > 255 {
			return &InvalidConfig{fmt.Sprintf("Color %d is outside the 256-color palette", col)}
		}
	}
	if c.Game.BoardWidth < 4 || c.Game.BoardHeight < 8 {
		return &InvalidConfig{"Board must be at least 4 cells wide and 8 cells tall"}
	}
	if c.Game.FPS < 1 {
		return &InvalidConfig{"FPS must be positive"}
	}
	return nil
}

func (c *Config) Save() {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		panic(err)
	}
	saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		panic(err)
	}
	err = os.WriteFile(filePath, jsonData, perm)
	if err != nil {
		panic(err)
	}
}

func readCfgFile(filePath string, a interface{}) {
	configReader, err := os.ReadFile(filePath)
	if err == nil {
		err = json.Unmarshal(configReader, &a)
		if err != nil {
			panic(err)
		}
	}
}
