package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config is the optional project-wide configuration `parsekit` reads from
// .parsekit.toml before applying command-line flags on top of it. It
// mirrors jsparser.Options/semantic.Options's plain-struct shape, but
// carries validator tags since this copy of the knobs comes from outside
// the process and needs checking before it reaches either options struct.
type Config struct {
	AllowReturnOutsideFunction bool `toml:"allow_return_outside_function"`
	RecordComments             bool `toml:"record_comments"`
	BuildCFG                   bool `toml:"build_cfg"`
	SuggestSimilarNames        bool `toml:"suggest_similar_names"`

	// Color controls diagnostic output color: "auto" (the default, follow
	// the terminal), "always", or "never".
	Color string `toml:"color" validate:"omitempty,oneof=auto always never"`
}

func defaultConfig() Config {
	return Config{
		RecordComments:      true,
		BuildCFG:             true,
		SuggestSimilarNames:  true,
		Color:                "auto",
	}
}

// loadConfig reads path if it exists and overlays it onto the defaults. A
// missing file is not an error — .parsekit.toml is optional, per
// SPEC_FULL.md's CLI section — but a malformed one, or one that fails
// validation, is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New()
