package sbplx

import "github.com/sbplx/sbplx/diag"

// Warning is the root package's name for the recoverable-diagnostic type
// threaded through every stage (spec.md §7). It is a plain alias of
// diag.Warning rather than a distinct type: component packages (container,
// fsa, filter, node) already depend on diag to avoid import cycles among
// themselves, and giving Decompile's callers a second, convertible type
// would just be an extra hop for no new behavior.
type Warning = diag.Warning
