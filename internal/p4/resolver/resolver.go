// Package resolver computes the effective connection configuration from
// explicit values, the per-directory environment and the live server.
package resolver

import (
	"context"
	"net"
	"os"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/endpoint"
	"github.com/Cyclone1070/p4bridge/internal/p4/executor"
	"github.com/Cyclone1070/p4bridge/internal/p4/pathutil"
	"github.com/Cyclone1070/p4bridge/internal/p4/result"
	"github.com/sirupsen/logrus"
)

// Resolver layers configuration sources. It holds no cache: every call
// spawns the CLI again.
type Resolver struct {
	exec   Executor
	state  *connection.State
	fs     pathutil.FileSystem
	hosts  endpoint.HostResolver
	getenv func(string) string
	log    logrus.FieldLogger
}

// New creates a Resolver that falls back to state when no explicit config is given.
func New(exec Executor, state *connection.State, log logrus.FieldLogger) *Resolver {
	if exec == nil {
		panic("exec is required")
	}
	if state == nil {
		panic("state is required")
	}
	if log == nil {
		panic("log is required")
	}
	return &Resolver{
		exec:   exec,
		state:  state,
		fs:     pathutil.OSFileSystem{},
		hosts:  net.DefaultResolver,
		getenv: os.Getenv,
		log:    log,
	}
}

// WithFileSystem returns a copy of r that probes directories through fs.
func (r *Resolver) WithFileSystem(fs pathutil.FileSystem) *Resolver {
	cp := *r
	cp.fs = fs
	return &cp
}

// WithHostResolver returns a copy of r that resolves port names through h.
func (r *Resolver) WithHostResolver(h endpoint.HostResolver) *Resolver {
	cp := *r
	cp.hosts = h
	return &cp
}

// WithGetenv returns a copy of r that reads the process environment through fn.
func (r *Resolver) WithGetenv(fn func(string) string) *Resolver {
	cp := *r
	cp.getenv = fn
	return &cp
}

// State returns the connection state the resolver falls back to.
func (r *Resolver) State() *connection.State {
	return r.state
}

// Resolve returns the effective configuration for a command touching paths.
//
// Sources, in order:
//  1. the nearest existing ancestor directory of the first usable path,
//     used as working directory for the next step
//  2. the CLI environment report for that directory (fills empty fields)
//  3. the live "info" handshake, with its port normalized against the
//     environment (fills empty fields)
//  4. explicit, or the current state when explicit is nil (overwrites)
//
// Steps 2 and 3 degrade silently on failure.
func (r *Resolver) Resolve(ctx context.Context, explicit *connection.Config, paths []string) connection.Config {
	src := r.source(explicit)
	dir := r.DirectoryConfig(src, paths).ConfigDirectory

	cfg := connection.Config{
		Password:        src.Password,
		Ignore:          src.Ignore,
		ConfigDirectory: dir,
	}

	env, ok := r.environment(ctx, dir)
	if ok {
		inherit(&cfg, env)
	}

	probe := cfg.Clone()
	probe.Overlay(src)
	if live, ok := r.info(ctx, probe); ok {
		inherit(&cfg, r.NormalizePort(ctx, live, env))
	}

	cfg.Overlay(src)
	r.log.WithField("connection", cfg.ConnectionString()).Debug("resolved")
	return cfg
}

// Connection is Resolve with no context paths.
func (r *Resolver) Connection(ctx context.Context, explicit *connection.Config) connection.Config {
	return r.Resolve(ctx, explicit, nil)
}

// DirectoryConfig clones base and points ConfigDirectory at the nearest
// existing directory of the first path that has one.
func (r *Resolver) DirectoryConfig(base connection.Config, paths []string) connection.Config {
	cfg := base.Clone()
	for _, p := range paths {
		if dir := pathutil.FindConfigDirectory(r.fs, p); dir != "" {
			cfg.ConfigDirectory = dir
			break
		}
	}
	return cfg
}

// Environment runs the environment report in dir and returns the
// connection it defines. Failure yields an empty Config.
func (r *Resolver) Environment(ctx context.Context, dir string) connection.Config {
	env, _ := r.environment(ctx, dir)
	return env
}

// Normalize replaces cfg's port with the environment's when both name the
// same server.
func (r *Resolver) Normalize(ctx context.Context, cfg connection.Config) connection.Config {
	env, ok := r.environment(ctx, cfg.ConfigDirectory)
	if !ok {
		return cfg.Clone()
	}
	return r.NormalizePort(ctx, cfg, env)
}

// NormalizePort prefers env's Port over cfg's when both carry the same port
// number and resolve to the same IPv4 address, or when only env's resolves.
// This keeps "perforce:1666" and "10.0.0.5:1666" from looking like two servers.
func (r *Resolver) NormalizePort(ctx context.Context, cfg, env connection.Config) connection.Config {
	out := cfg.Clone()
	if env.Port == "" || endpoint.Parse(cfg.Port).PortNumber != endpoint.Parse(env.Port).PortNumber {
		return out
	}
	cfgAddr := endpoint.Address(ctx, r.hosts, cfg.Port)
	envAddr := endpoint.Address(ctx, r.hosts, env.Port)
	if envAddr == cfgAddr || (cfgAddr == "" && envAddr != "") {
		out.Port = env.Port
	}
	return out
}

func (r *Resolver) source(explicit *connection.Config) connection.Config {
	if explicit != nil {
		return explicit.Clone()
	}
	return r.state.Current()
}

func (r *Resolver) environment(ctx context.Context, dir string) (connection.Config, bool) {
	res := r.exec.Execute(ctx, connection.Config{ConfigDirectory: dir}, "set", nil, executor.Options{})
	if !res.Success() {
		r.log.WithField("exit_code", res.ExitCode).Debug("environment report unavailable")
		return connection.Config{}, false
	}
	return result.NewSet(result.Parse(res.ExitCode, res.Output, result.SetSchema)).Config(), true
}

func (r *Resolver) info(ctx context.Context, cfg connection.Config) (connection.Config, bool) {
	res := r.exec.Execute(ctx, cfg, "info", nil, executor.Options{ZTag: result.InfoSchema.ZTag})
	if !res.Success() {
		r.log.WithField("exit_code", res.ExitCode).Debug("server handshake unavailable")
		return connection.Config{}, false
	}
	return result.NewInfo(result.Parse(res.ExitCode, res.Output, result.InfoSchema)).Config(), true
}

// inherit fills the empty connection fields and Host of dst from src.
func inherit(dst *connection.Config, src connection.Config) {
	dst.InheritConnection(src)
	if dst.Host == "" {
		dst.Host = src.Host
	}
}
