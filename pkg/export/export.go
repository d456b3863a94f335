// Package export renders decoded Quill documents into other formats.
//
// Writers are looked up by name from a registry. The text, markdown and json
// writers register themselves when the package is loaded.
package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/yaklabco/qstripper/pkg/config"
	"github.com/yaklabco/qstripper/pkg/quill"
)

// Writer renders a document to w.
type Writer interface {
	// Name is the registry name, e.g. "markdown".
	Name() string

	// Extension is the suffix for exported files, without the leading separator.
	Extension() string

	// Write renders doc to w.
	Write(w io.Writer, doc *quill.Document) error
}

// Options configures writers. Each writer uses the fields that apply to it.
type Options struct {
	// Wrap is the text wrap column; 0 disables wrapping.
	Wrap int

	// Tabs selects tab rendering for the text writer.
	Tabs config.TabMode

	// TabWidth is the tab stop interval.
	TabWidth int

	// PageHeader includes the page header and footer.
	PageHeader bool
}

// OptionsFromConfig builds writer options from the resolved configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Wrap:       cfg.Text.Wrap,
		Tabs:       cfg.Text.Tabs,
		TabWidth:   cfg.Text.TabWidth,
		PageHeader: cfg.Text.PageHeader,
	}
}

// DefaultOptions returns the options NewConfig implies.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewConfig())
}

func (o Options) tabWidth() int {
	if o.TabWidth < 1 {
		return config.DefaultTabWidth
	}
	return o.TabWidth
}

// Factory creates a configured writer.
type Factory func(opts Options) Writer

// ErrUnknownWriter is returned by New for an unregistered name.
var ErrUnknownWriter = errors.New("unknown export format")

//nolint:gochecknoglobals // Writer registry populated from init.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a writer factory under name, replacing any previous one.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered writer names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates the writer registered under name.
func New(name string, opts Options) (Writer, error) {
	factory, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownWriter, name, Names())
	}
	return factory(opts), nil
}

func init() {
	Register(string(config.ExportText), func(opts Options) Writer { return NewText(opts) })
	Register(string(config.ExportMarkdown), func(opts Options) Writer { return NewMarkdown(opts) })
	Register(string(config.ExportJSON), func(opts Options) Writer { return NewJSON(opts) })
}
