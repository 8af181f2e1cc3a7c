package persistence

import (
	"context"
	"log/slog"
	"sync"
)

type commandKind uint8

const (
	cmdSaveCharacter commandKind = iota
	cmdLoadCharacter
)

type command struct {
	kind        commandKind
	bundle      CharacterBundle
	characterID int64
	reply       chan loadResult
}

type loadResult struct {
	bundle CharacterBundle
	found  bool
	err    error
}

// Pipeline isolates the tick loop from storage latency: every durable
// write/read is a message on a bounded channel, processed by a single
// background goroutine so the simulation never blocks on disk I/O.
type Pipeline struct {
	store    *Store
	cache    *Cache
	commands chan command
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewPipeline constructs a Pipeline with a bounded command channel of the
// given size (256 in production, per config.GameServer.PersistenceChannelSize).
func NewPipeline(store *Store, cache *Cache, bufferSize int, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:    store,
		cache:    cache,
		commands: make(chan command, bufferSize),
		logger:   logger,
	}
}

// Start launches the background worker. It runs until ctx is cancelled;
// callers should cancel ctx and then call Shutdown to wait for the
// in-flight command (if any) to finish.
func (p *Pipeline) Start(ctx context.Context) {
	p.wg.Add(1)
	go p.run(ctx)
}

// Shutdown blocks until the worker goroutine has exited, or waitCtx is
// done first.
func (p *Pipeline) Shutdown(waitCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-waitCtx.Done():
		return waitCtx.Err()
	}
}

func (p *Pipeline) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-p.commands:
			p.handle(ctx, cmd)
		}
	}
}

func (p *Pipeline) handle(ctx context.Context, cmd command) {
	switch cmd.kind {
	case cmdSaveCharacter:
		p.handleSave(ctx, cmd.bundle)
	case cmdLoadCharacter:
		bundle, found, err := p.loadWithCache(ctx, cmd.characterID)
		cmd.reply <- loadResult{bundle: bundle, found: found, err: err}
	}
}

func (p *Pipeline) handleSave(ctx context.Context, bundle CharacterBundle) {
	if err := p.store.SaveCharacter(ctx, bundle); err != nil {
		p.logger.Error("save character failed", "character_id", bundle.Character.CharacterID, "err", err)
		return
	}
	if p.cache != nil {
		if err := p.cache.Set(ctx, bundle); err != nil {
			p.logger.Warn("cache write-through failed", "character_id", bundle.Character.CharacterID, "err", err)
		}
	}
}

func (p *Pipeline) loadWithCache(ctx context.Context, characterID int64) (CharacterBundle, bool, error) {
	if p.cache != nil {
		if bundle, found, err := p.cache.Get(ctx, characterID); err != nil {
			p.logger.Warn("cache read failed, falling back to store", "character_id", characterID, "err", err)
		} else if found {
			return bundle, true, nil
		}
	}

	bundle, found, err := p.store.LoadCharacter(ctx, characterID)
	if err != nil || !found {
		return CharacterBundle{}, found, err
	}
	if p.cache != nil {
		if err := p.cache.Set(ctx, bundle); err != nil {
			p.logger.Warn("cache fill failed", "character_id", characterID, "err", err)
		}
	}
	return bundle, true, nil
}

// SaveCharacter enqueues a fire-and-forget save. A full queue drops the
// save and logs a warning rather than blocking the tick loop.
func (p *Pipeline) SaveCharacter(bundle CharacterBundle) {
	select {
	case p.commands <- command{kind: cmdSaveCharacter, bundle: bundle}:
	default:
		p.logger.Warn("persistence queue full, dropping save", "character_id", bundle.Character.CharacterID)
	}
}

// LoadCharacter enqueues a request/reply load and blocks until the
// background worker answers or ctx is done.
func (p *Pipeline) LoadCharacter(ctx context.Context, characterID int64) (CharacterBundle, bool, error) {
	reply := make(chan loadResult, 1)
	select {
	case p.commands <- command{kind: cmdLoadCharacter, characterID: characterID, reply: reply}:
	case <-ctx.Done():
		return CharacterBundle{}, false, ctx.Err()
	}

	select {
	case res := <-reply:
		return res.bundle, res.found, res.err
	case <-ctx.Done():
		return CharacterBundle{}, false, ctx.Err()
	}
}
