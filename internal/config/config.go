// Package config loads an optional TOML configuration file that seeds the
// engine's UCI option defaults, grounded on the TOML-based settings file
// read by other terminal chess tools in this corpus.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/nkoppel/rootchego/internal/engine"
)

// File is the on-disk shape of a config file: an [engine] table mirroring
// engine.Options, with UCI-style field names.
type File struct {
	Engine struct {
		Hash     uint `toml:"hash_mib"`
		Threads  uint `toml:"threads"`
		Chess960 bool `toml:"chess960"`
	} `toml:"engine"`
}

// Defaults is the configuration used when no file is present or specified:
// a single thread, a modest hash table, classical castling.
func Defaults() engine.Options {
	return engine.Options{
		Hash:     16,
		Threads:  1,
		Chess960: false,
	}
}

// Load reads a TOML config file at path and overlays it onto Defaults(). A
// missing path is not an error: it simply returns the defaults.
func Load(path string) (engine.Options, error) {
	opts := Defaults()
	if path == "" {
		return opts, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return opts, nil
	}

	var f File
	f.Engine.Hash = opts.Hash
	f.Engine.Threads = opts.Threads
	f.Engine.Chess960 = opts.Chess960

	if _, err := toml.DecodeFile(path, &f); err != nil {
		return opts, fmt.Errorf("config: decode %v: %w", path, err)
	}

	opts.Hash = f.Engine.Hash
	opts.Threads = f.Engine.Threads
	opts.Chess960 = f.Engine.Chess960
	return opts, nil
}
