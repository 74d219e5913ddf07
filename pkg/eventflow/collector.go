package eventflow

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/randalmurphal/eventflow/pkg/eventflow/registry"
)

// Collector gathers handler descriptors through explicit registration.
//
// There is no package-level collector; create one per process (or per
// generation pass) and hand its output to Build.
//
// Descriptors are validated on Register, so a malformed declaration fails
// at the call site that introduced it.
type Collector struct {
	entries *registry.Registry[string, Descriptor]
	logger  *slog.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithCollectorLogger sets the logger used to report replaced descriptors.
func WithCollectorLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) {
		c.logger = logger
	}
}

// NewCollector creates an empty collector.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{entries: registry.New[string, Descriptor]()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a descriptor. Registering an owner id again replaces the
// earlier descriptor (last write wins) and keeps its position.
//
// The emit and listen values are stored in normalized form, copied from d,
// so later changes to the caller's slices do not reach the collector.
func (c *Collector) Register(d Descriptor) error {
	decl, err := d.Declaration()
	if err != nil {
		return err
	}

	stored := Descriptor{OwnerID: decl.OwnerID, Emit: decl.Emits, Listen: decl.Listens}
	if replaced := c.entries.Register(d.OwnerID, stored); replaced && c.logger != nil {
		c.logger.Debug("handler declaration replaced",
			slog.String("owner", d.OwnerID),
		)
	}
	return nil
}

// MustRegister adds a descriptor, panicking on error.
func (c *Collector) MustRegister(d Descriptor) {
	if err := c.Register(d); err != nil {
		panic(fmt.Sprintf("eventflow: failed to register handler: %v", err))
	}
}

// Declare registers a handler from its owner id and lists of names.
func (c *Collector) Declare(ownerID string, emits, listens []string) error {
	return c.Register(Descriptor{OwnerID: ownerID, Emit: emits, Listen: listens})
}

// RegisterAll registers descriptors in order, stopping at the first error.
func (c *Collector) RegisterAll(descs []Descriptor) error {
	for i, d := range descs {
		if err := c.Register(d); err != nil {
			return fmt.Errorf("descriptor %d: %w", i, err)
		}
	}
	return nil
}

// Unregister removes a handler.
func (c *Collector) Unregister(ownerID string) {
	c.entries.Delete(ownerID)
}

// Len returns the number of registered handlers.
func (c *Collector) Len() int {
	return c.entries.Len()
}

// Descriptors returns the registered descriptors in registration order.
// Emit and Listen hold copies of the normalized name lists.
func (c *Collector) Descriptors() []Descriptor {
	descs := c.entries.Values()
	for i, d := range descs {
		descs[i] = Descriptor{
			OwnerID: d.OwnerID,
			Emit:    slices.Clone(d.Emit.([]string)),
			Listen:  slices.Clone(d.Listen.([]string)),
		}
	}
	return descs
}

// Build aggregates the registered descriptors into Documentation.
func (c *Collector) Build(opts ...BuildOption) (*Documentation, error) {
	return Build(c.Descriptors(), opts...)
}
