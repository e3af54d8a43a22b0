package sbplx

import (
	"fmt"
	"time"

	"github.com/sbplx/sbplx/container"
)

// Config collects every tunable limit Decompile's pipeline stages expose,
// following the teacher package's meta.Config/lazy.Config shape: a single
// struct, a Default constructor, and a Validate method, passed explicitly
// rather than read from package-level state.
type Config struct {
	// Container carries the Options container.Decode needs for fields the
	// fixed 16-byte header cannot encode (spec.md §9 Open Question).
	Container container.Options

	// SimplifyBudget bounds wall-clock time spent in NNF simplification
	// per partition (spec.md §7 AnalysisTimeout); <= 0 disables the bound.
	SimplifyBudget time.Duration

	// SimplifyMaxSteps bounds the number of simplification passes per
	// partition; <= 0 disables the bound.
	SimplifyMaxSteps int
}

// DefaultConfig returns a Config matching the single-profile-file layout
// (zero Container.Options) with a conservative simplification budget.
func DefaultConfig() Config {
	return Config{
		SimplifyBudget:   200 * time.Millisecond,
		SimplifyMaxSteps: 64,
	}
}

// Validate rejects a negative step bound; a non-positive SimplifyBudget is
// a deliberate "disabled" sentinel, not an error.
func (c Config) Validate() error {
	if c.SimplifyMaxSteps < 0 {
		return fmt.Errorf("sbplx: SimplifyMaxSteps must be >= 0, got %d", c.SimplifyMaxSteps)
	}
	if c.Container.StatesCount < 0 || c.Container.EntitlementsCount < 0 || c.Container.NumProfiles < 0 {
		return fmt.Errorf("sbplx: container.Options fields must be >= 0")
	}
	return nil
}
