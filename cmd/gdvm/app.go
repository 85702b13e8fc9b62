package main

import (
	"github.com/terassyi/gdvm/internal/artifact"
	"github.com/terassyi/gdvm/internal/cache"
	"github.com/terassyi/gdvm/internal/catalog"
	"github.com/terassyi/gdvm/internal/config"
	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/github"
	"github.com/terassyi/gdvm/internal/host"
	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/launcher"
	"github.com/terassyi/gdvm/internal/paths"
	"github.com/terassyi/gdvm/internal/pin"
	"github.com/terassyi/gdvm/internal/registry"
	"github.com/terassyi/gdvm/internal/resolve"
	"github.com/terassyi/gdvm/internal/selfupdate"
)

// app bundles every service a subcommand might need, built once per
// invocation from the on-disk home directory and host environment.
type app struct {
	Paths     *paths.Paths
	Config    *config.Config
	Platform  host.Platform
	Cache     *cache.Store
	Artifact  *artifact.Cache
	Catalog   *catalog.Catalog
	Resolver  *resolve.Resolver
	Installer *installer.Installer
	Launcher  *launcher.Launcher
	Pin       *pin.Manager
	Updater   *selfupdate.Updater
	Formatter *gdvmerrors.Formatter
}

func newApp(fmtr *gdvmerrors.Formatter) (*app, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(p.Base())
	if err != nil {
		return nil, err
	}

	platform, err := host.Detect()
	if err != nil {
		return nil, err
	}

	store := cache.New(p.CacheIndexFile())
	client := github.NewHTTPClient(cfg.GithubToken())
	reg := registry.New(cfg.GithubToken())
	cat := catalog.New(reg, store, fmtr)
	art := artifact.New(p.ArchiveCacheDir())

	return &app{
		Paths:     p,
		Config:    cfg,
		Platform:  platform,
		Cache:     store,
		Artifact:  art,
		Catalog:   cat,
		Resolver:  resolve.New(cat, platform, fmtr),
		Installer: installer.New(cat, art, p, platform, client),
		Launcher:  launcher.New(p),
		Pin:       pin.New(p, fmtr),
		Updater:   selfupdate.New(p, store, client, platform, version),
		Formatter: fmtr,
	}, nil
}
