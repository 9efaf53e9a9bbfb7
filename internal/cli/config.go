package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/strataviz/harris/pkg/cache"
	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/store"
)

// FileConfig is the harris.toml structure. Every section is optional; zero
// values fall back to built-in defaults.
//
//	[layout]
//	width = 1600
//	rank_spacing = 120
//
//	[overrides.positions."H1"]
//	x = 300
//	y = 220
//
//	[overrides.ports."L2->M1"]
//	source = "left"
//	target = "left"
//
//	[overrides.controls]
//	"L2->M1" = 320.0
//
//	[serve]
//	addr = ":8080"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
type FileConfig struct {
	Layout    layout.Config     `toml:"layout"`
	Overrides layout.Overrides  `toml:"overrides"`
	Serve     ServeConfig       `toml:"serve"`
	Redis     cache.RedisConfig `toml:"redis"`
	Mongo     store.MongoConfig `toml:"mongo"`
}

// ServeConfig configures the HTTP server command.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads a harris.toml file. A missing path returns zero config
// when the path is the implicit default, and an error when given explicitly.
func loadConfig(path string, explicit bool) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
