package main

import (
	"github.com/xyproto/env/v2"
)

type config struct {
	// Out is the directory generated files are written to.
	Out string
	// Select names a selection file. Everything is loaded when it is
	// empty.
	Select string
	Dump   bool
	// Width overrides the report width when positive.
	Width int
}

// loadConfig reads the settings from the environment as it is now. env
// caches the environment on first use, so it is reloaded every time.
func loadConfig() config {
	env.Load()
	return config{
		Out:    env.Str("WRANGLE_OUT", "generated"),
		Select: env.Str("WRANGLE_SELECT"),
		Dump:   env.Bool("WRANGLE_DUMP"),
		Width:  env.Int("WRANGLE_WIDTH", 0),
	}
}
