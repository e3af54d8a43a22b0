package sbplx

import "errors"

// ErrNoSuchOperation is returned when a caller-requested operation name
// does not appear in the supplied operation-name table.
var ErrNoSuchOperation = errors.New("sbplx: no such operation")
