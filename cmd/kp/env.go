package main

import (
	"context"
	"io"
	"os"

	"github.com/aboutmydreams/kp"
	"github.com/aboutmydreams/kp/internal/config"
	"github.com/aboutmydreams/kp/internal/fileutil"
	"github.com/aboutmydreams/kp/internal/process"
)

// Environment holds injectable dependencies for testability.
// Nil fields fall back to safe defaults: no environment variables, no
// default config file, real PATH lookups and the platform probe chain.
type Environment struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Getenv     func(key string) string
	Environ    func() []string
	ConfigPath func() (string, error) // Default config location
	LookPath   func(tool string) string
	Elevated   func() bool
	Runner     kp.Runner  // Nil = kp.ExecRunner
	Sender     kp.Sender  // Nil = kp.DefaultSender
	Probes     []kp.Probe // Nil = kp.DefaultProbes

	// ProcessName labels PIDs in dry-run output. Nil = kp.ProcessName.
	ProcessName func(ctx context.Context, pid int) string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
		Environ:    os.Environ,
		ConfigPath: config.DefaultPath,
		LookPath:   fileutil.LookTool,
		Elevated:   process.Elevated,
	}
}

func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e *Environment) environ() []string {
	if e.Environ == nil {
		return nil
	}
	return e.Environ()
}

func (e *Environment) defaultConfigPath() string {
	if e.ConfigPath == nil {
		return ""
	}
	path, err := e.ConfigPath()
	if err != nil {
		return ""
	}
	return path
}

func (e *Environment) lookPath(tool string) string {
	if e.LookPath == nil {
		return fileutil.LookTool(tool)
	}
	return e.LookPath(tool)
}

func (e *Environment) elevated() bool {
	if e.Elevated == nil {
		return process.Elevated()
	}
	return e.Elevated()
}

func (e *Environment) processName(ctx context.Context, pid int) string {
	if e.ProcessName == nil {
		return kp.ProcessName(ctx, pid)
	}
	return e.ProcessName(ctx, pid)
}

func (e *Environment) sender() kp.Sender {
	if e.Sender == nil {
		return kp.DefaultSender()
	}
	return e.Sender
}

func (e *Environment) probes() []kp.Probe {
	if e.Probes == nil {
		return kp.DefaultProbes()
	}
	return e.Probes
}

// finderOptions returns the options that route discovery through e.
func (e *Environment) finderOptions() []kp.FinderOption {
	opts := []kp.FinderOption{kp.WithProbes(e.probes())}
	if e.Runner != nil {
		opts = append(opts, kp.WithRunner(e.Runner))
	}
	return opts
}
