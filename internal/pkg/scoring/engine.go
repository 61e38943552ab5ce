package scoring

import "errors"

// ErrEndorserNotFound is returned when an endorser id is not in the
// configured table.
var ErrEndorserNotFound = errors.New("endorser not found")

// Engine evaluates business plans against the configured static tables.
// All methods are pure: the same plan and config always produce the same
// result, and nothing here performs I/O or mutates state.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine over the given config.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// NewDefaultEngine creates an engine over the production tables.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
