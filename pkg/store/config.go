package store

import (
	"log"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/lex/pkg/leitner"
)

// Config supplies the on-disk locations and review tuning for a lex install.
type Config interface {
	// BasePath is the diskv root for the review deck.
	BasePath() string
	// DictionariesPath is the directory scanned for dictionary sources.
	DictionariesPath() string
	// Intervals is the per-box review interval table, in days.
	Intervals() []int
	// SaveOnGrade controls whether the deck is flushed after every grade
	// rather than only on exit.
	SaveOnGrade() bool
}

// LoadConfig reads the .lex config file (current directory or
// LEX_CONFIG_PATH) with LEX_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.lex/deck")
	viper.SetDefault("dictionaries", "~/.lex/dictionaries")
	viper.SetDefault("intervals", leitner.DefaultIntervals)
	viper.SetDefault("save-on-grade", true)
	viper.SetConfigName(".lex") // .yaml is implicit
	viper.SetEnvPrefix("LEX")
	viper.AutomaticEnv()

	if override := os.Getenv("LEX_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	return &fileConfig{
		Path:         expand(viper.GetString("path")),
		Dictionaries: expand(viper.GetString("dictionaries")),
		Days:         viper.GetIntSlice("intervals"),
		OnGrade:      viper.GetBool("save-on-grade"),
	}, nil
}

// expand resolves a leading ~ so paths from config files work as typed.
func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return filepath.Clean(expanded)
}

type fileConfig struct {
	Path         string `json:"path"`
	Dictionaries string `json:"dictionaries"`
	Days         []int  `json:"intervals"`
	OnGrade      bool   `json:"save-on-grade"`
}

func (f *fileConfig) BasePath() string         { return f.Path }
func (f *fileConfig) DictionariesPath() string { return f.Dictionaries }
func (f *fileConfig) Intervals() []int         { return f.Days }
func (f *fileConfig) SaveOnGrade() bool        { return f.OnGrade }
