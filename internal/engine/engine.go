// Package engine is the top-level façade wiring the catalog, the
// parser/planner/command pipeline, and structured logging, following
// the teacher's idiom of a small struct holding a *zap.Logger plus
// whatever it coordinates (see internal/wal/consumer.go's field-tagging
// style in the zoravur retrieval example).
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nosqlite-go/nosqlite/internal/catalog"
	"github.com/nosqlite-go/nosqlite/internal/command"
	"github.com/nosqlite-go/nosqlite/internal/config"
	"github.com/nosqlite-go/nosqlite/internal/planner"
	"github.com/nosqlite-go/nosqlite/internal/parser"
)

// Engine wires together the catalog and the command pipeline behind a
// single in-process entry point, Send.
type Engine struct {
	log *zap.Logger
	cat *catalog.Catalog
}

// New constructs an Engine from cfg, rooted at a fresh empty catalog.
func New(cfg config.Config, log *zap.Logger) (*Engine, error) {
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	cat := catalog.New(catalog.Options{NodeSize: cfg.NodeSize, AllocatorStrategy: strategy})
	return &Engine{log: log, cat: cat}, nil
}

// Send runs one line of input end to end: lex, parse, plan, dispatch.
// context.Context is threaded through per the teacher's idiom of
// passing ctx into every public entry point, even though the storage
// core itself never blocks (spec.md §5: no cancellation surface).
func (e *Engine) Send(ctx context.Context, text string) (command.Result, error) {
	start := time.Now()
	log := e.log.With(zap.String("input", text))

	stmt, err := parser.Parse(text)
	if err != nil {
		log.Warn("parse failed", zap.Error(err))
		return command.Result{}, err
	}

	cmd, err := planner.Plan(stmt)
	if err != nil {
		log.Warn("plan failed", zap.Error(err))
		return command.Result{}, err
	}

	res, err := command.Dispatch(ctx, e.cat, cmd)
	if err != nil {
		log.Warn("dispatch failed", zap.Int("kind", int(cmd.Kind)), zap.Error(err))
		return command.Result{}, err
	}

	log.Debug("dispatched", zap.Int("kind", int(cmd.Kind)), zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// Catalog exposes the underlying catalog for callers that need direct
// access.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}
