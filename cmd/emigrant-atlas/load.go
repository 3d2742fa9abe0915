package main

import (
	"go.uber.org/zap"

	"emigrant-atlas/internal/geo"
	"emigrant-atlas/internal/mapping"
	"emigrant-atlas/internal/reconcile"
	"emigrant-atlas/internal/source"
)

// loadRegistry builds the registry from the configured reference geometry.
func (a *app) loadRegistry() (*geo.Registry, error) {
	fc, err := geo.LoadFile(a.cfg.Reference.GeoJSON)
	if err != nil {
		return nil, err
	}

	reg, err := geo.BuildRegistry(fc, a.cfg.Keys())
	if err != nil {
		return nil, err
	}

	diags := reg.Diagnostics()
	for _, d := range diags.All() {
		a.logger.Debug("reference feature skipped",
			zap.String("code", d.Code), zap.String("source", d.Source), zap.String("message", d.Message))
	}

	a.logger.Info("reference geometry loaded",
		zap.String("path", a.cfg.Reference.GeoJSON),
		zap.Int("entities", reg.Len()),
		zap.Int("names", len(reg.Names())))

	return reg, nil
}

// loadTables returns the configured tables, or the built-in ones.
func (a *app) loadTables() (*mapping.Tables, error) {
	if a.cfg.Tables.Path == "" {
		return mapping.Default(), nil
	}

	return mapping.LoadFile(a.cfg.Tables.Path)
}

func (a *app) newResolver() (*reconcile.Resolver, error) {
	reg, err := a.loadRegistry()
	if err != nil {
		return nil, err
	}

	tables, err := a.loadTables()
	if err != nil {
		return nil, err
	}

	opts := []reconcile.Option{reconcile.WithLogger(a.logger)}
	if d := a.cfg.Tables.MaxDistance; d != nil {
		opts = append(opts, reconcile.WithMaxDistance(*d))
	}

	return reconcile.New(reg, tables.Compile(), opts...)
}

func (a *app) loadDocument() (*source.Document, error) {
	return source.LoadFile(a.cfg.Data.Path)
}
