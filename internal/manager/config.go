package manager

import (
	"github.com/rs/zerolog"

	"github.com/sergheevdev/event-bus/internal/handler"
)

// Variant names, used as the "variant" metrics label and in snapshots.
const (
	VariantSimple     = "simple"
	VariantConcurrent = "concurrent"
)

// Config encapsulates all tunables for Manager construction. Zero values are
// replaced by defaults.
type Config struct {
	// Concurrent selects the lock-guarded variant in New.
	Concurrent bool
	// Logger receives debug and error events. Nil disables logging.
	Logger *zerolog.Logger
	// Extractor discovers handlers. Defaults to handler.TagExtractor.
	Extractor handler.Extractor
	// Invoker calls handlers. Defaults to handler.ReflectInvoker.
	Invoker handler.Invoker
	// Publisher receives lifecycle events. Defaults to a no-op publisher.
	Publisher EventPublisher
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	if c.Extractor == nil {
		c.Extractor = handler.NewTagExtractor()
	}
	if c.Invoker == nil {
		c.Invoker = handler.ReflectInvoker{}
	}
	if c.Publisher == nil {
		c.Publisher = noopPublisher{}
	}
	return c
}
