// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements real-time rendering: the render context
// owning the GPU context, the scene, the per-frame matrix and
// rendertarget stacks, and the worker thread all caller API marshals
// through.
package engine

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
)

const pkgName = "engine"

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

const (
	dflWidth  = 1280
	dflHeight = 720
)

// Config is used to configure the render context.
type Config struct {
	// The GPU backend to select.
	//
	// Default is BackendAuto.
	Backend gpu.Backend `toml:"backend"`

	// Prefer double-buffering rather than the
	// default triple-buffering.
	//
	// Default is false. The render context stores this
	// value; it is not passed to the GPU context.
	DoubleBuffered bool `toml:"double_buffered"`

	// The initial size of the default rendertarget.
	//
	// Default is 1280x720.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// A clear color for the default rendertarget.
	//
	// Default is opaque black. The render context stores this
	// value; the clear pass in Draw does not pass a color to
	// the GPU context.
	ClearColor [4]float32 `toml:"clear_color"`

	// Whether the HUD pass runs after the main pass.
	//
	// Default is false.
	HUD bool `toml:"hud"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:    gpu.BackendAuto,
		Width:      dflWidth,
		Height:     dflHeight,
		ClearColor: [4]float32{0, 0, 0, 1},
	}
}

// LoadConfig reads a TOML configuration file, filling unset fields from
// DefaultConfig.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()
	b, err := os.ReadFile(filename)
	if err != nil {
		return config, errs.New(pkgName, errs.IO, err.Error())
	}
	if err := toml.Unmarshal(b, &config); err != nil {
		return config, errs.New(pkgName, errs.InvalidData, err.Error())
	}
	if config.Width <= 0 {
		config.Width = dflWidth
	}
	if config.Height <= 0 {
		config.Height = dflHeight
	}
	return config, nil
}

var cfg Config

// Configure replaces the engine's configuration
// with config. It affects contexts created afterwards.
func Configure(config *Config) {
	cfg = *config
}

func init() {
	config := DefaultConfig()
	Configure(&config)
}
