package labeling

import (
	"fmt"
	"sort"

	"github.com/reviewradar/labeling-engine/pkg/apperrors"
)

// ProviderConstructor creates a provider for one backend kind, compiling its
// prompt for the given aspect list.
type ProviderConstructor func(aspects []string) (Provider, error)

// ProviderFactory dispatches provider names to constructors. The constructor
// map is built explicitly at startup, so available providers are statically
// inspectable.
type ProviderFactory struct {
	constructors map[string]ProviderConstructor
}

// NewProviderFactory creates a factory over an explicit name-to-constructor map.
func NewProviderFactory(constructors map[string]ProviderConstructor) *ProviderFactory {
	return &ProviderFactory{constructors: constructors}
}

// Create instantiates the named provider for the given aspect list.
func (f *ProviderFactory) Create(name string, aspects []string) (Provider, error) {
	constructor, ok := f.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", apperrors.ErrUnknownProvider, name, f.Kinds())
	}
	return constructor(aspects)
}

// Kinds returns the registered provider names, sorted.
func (f *ProviderFactory) Kinds() []string {
	kinds := make([]string, 0, len(f.constructors))
	for name := range f.constructors {
		kinds = append(kinds, name)
	}
	sort.Strings(kinds)
	return kinds
}
