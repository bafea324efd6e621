package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap map[string]string

type EditorOptions struct {
	MaxLength     int      `toml:"max-length"`
	PreviewLength int      `toml:"preview-length"`
	Symbols       []string `toml:"symbols"`
	FontSizes     []string `toml:"font-sizes"`
	FontFamilies  []string `toml:"font-families"`
	Headings      []string `toml:"headings"`
	Debug         bool     `toml:"debug"`
}

type Store struct {
	Backend    string `toml:"backend"` // "file", "sqlite", "memory"
	Path       string `toml:"path"`
	Key        string `toml:"key"`
	IDStrategy string `toml:"id-strategy"` // "timestamp", "random"
}

type Sanitize struct {
	Policy string `toml:"policy"` // "ugc", "strict"
}

type Export struct {
	Dir string `toml:"dir"`
}

type Theme struct {
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	SelectionForeground  string `toml:"selection-foreground"`
	SelectionBackground  string `toml:"selection-background"`
	PanelForeground      string `toml:"panel-foreground"`
	PanelActive          string `toml:"panel-active"`
}

type Config struct {
	Editor   EditorOptions `toml:"editor"`
	Store    Store         `toml:"store"`
	Sanitize Sanitize      `toml:"sanitize"`
	Export   Export        `toml:"export"`
	Theme    Theme         `toml:"theme"`
	Keymap   Keymap        `toml:"keymap"`
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	IDTimestamp = "timestamp"
	IDRandom    = "random"

	PolicyUGC    = "ugc"
	PolicyStrict = "strict"
)

func Default() Config {
	return Config{
		Editor: EditorOptions{
			MaxLength:     5000,
			PreviewLength: 50,
			Symbols:       []string{"©", "®", "™", "±", "√", "∞", "Ω", "π", "µ"},
			FontSizes:     []string{"12px", "14px", "16px", "18px", "24px", "32px"},
			FontFamilies:  []string{"serif", "sans-serif", "monospace", "cursive"},
			Headings:      []string{"h1", "h2", "h3", "h4", "h5", "h6", "p"},
		},
		Store: Store{
			Backend:    BackendFile,
			Key:        "savedContents",
			IDStrategy: IDTimestamp,
		},
		Sanitize: Sanitize{
			Policy: PolicyUGC,
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#0F1419",
			SelectionForeground:  "#B3B1AD",
			SelectionBackground:  "#27425A",
			PanelForeground:      "#5C6773",
			PanelActive:          "#E6B450",
		},
		Keymap: Keymap{
			"ctrl+b": "bold",
			"ctrl+o": "italic",
			"ctrl+u": "underline",
			"alt+s":  "strike",
			"alt+-":  "subscript",
			"alt+=":  "superscript",
			"ctrl+l": "align-left",
			"ctrl+e": "align-center",
			"ctrl+r": "align-right",
			"alt+j":  "justify",
			"alt+]":  "indent",
			"alt+[":  "outdent",
			"alt+o":  "ordered-list",
			"alt+u":  "unordered-list",
			"alt+1":  "heading=h1",
			"alt+2":  "heading=h2",
			"alt+3":  "heading=h3",
			"alt+0":  "heading=p",
			"alt+x":  "clear-formatting",
			"ctrl+z": "undo",
			"ctrl+y": "redo",
			"ctrl+x": "cut",
			"ctrl+c": "copy",
			"ctrl+v": "paste",
			"alt+c":  "copy-format",
			"alt+v":  "apply-format",

			// Controls that take an argument open the command line, which
			// moves focus away from the text.
			"ctrl+k": "prompt link=https://",
			"ctrl+f": "prompt font-size=",
			"alt+f":  "prompt font-family=",
			"ctrl+t": "prompt fore-color=",
			"alt+t":  "prompt back-color=",
			"ctrl+g": "prompt symbol=",
			"ctrl+p": "prompt",
			"alt+e":  "prompt export ",

			"ctrl+s": "save",
			"ctrl+n": "new",
			"ctrl+q": "quit",
		},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile overlays the TOML file at path on the defaults. A missing file
// yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}
	merge(&cfg, userCfg)
	return cfg, nil
}

func merge(cfg *Config, user Config) {
	if user.Editor.MaxLength > 0 {
		cfg.Editor.MaxLength = user.Editor.MaxLength
	}
	if user.Editor.PreviewLength > 0 {
		cfg.Editor.PreviewLength = user.Editor.PreviewLength
	}
	if len(user.Editor.Symbols) > 0 {
		cfg.Editor.Symbols = user.Editor.Symbols
	}
	if len(user.Editor.FontSizes) > 0 {
		cfg.Editor.FontSizes = user.Editor.FontSizes
	}
	if len(user.Editor.FontFamilies) > 0 {
		cfg.Editor.FontFamilies = user.Editor.FontFamilies
	}
	if len(user.Editor.Headings) > 0 {
		cfg.Editor.Headings = user.Editor.Headings
	}
	if user.Editor.Debug {
		cfg.Editor.Debug = true
	}
	if user.Store.Backend != "" {
		cfg.Store.Backend = user.Store.Backend
	}
	if user.Store.Path != "" {
		cfg.Store.Path = user.Store.Path
	}
	if user.Store.Key != "" {
		cfg.Store.Key = user.Store.Key
	}
	if user.Store.IDStrategy != "" {
		cfg.Store.IDStrategy = user.Store.IDStrategy
	}
	if user.Sanitize.Policy != "" {
		cfg.Sanitize.Policy = user.Sanitize.Policy
	}
	if user.Export.Dir != "" {
		cfg.Export.Dir = user.Export.Dir
	}
	mergeTheme(&cfg.Theme, user.Theme)
	for k, v := range user.Keymap {
		cfg.Keymap[k] = v
	}
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.PanelForeground != "" {
		dst.PanelForeground = src.PanelForeground
	}
	if src.PanelActive != "" {
		dst.PanelActive = src.PanelActive
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("RICHPAD_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "richpad"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "richpad"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ExportDir is where exported snippets are written when no path is given.
func (c Config) ExportDir() (string, error) {
	if c.Export.Dir != "" {
		return c.Export.Dir, nil
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exports"), nil
}

// StateDir is where saved snippets live by default.
func StateDir() (string, error) {
	if v := os.Getenv("RICHPAD_STATE_HOME"); v != "" {
		return v, nil
	}
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "richpad"), nil
}
