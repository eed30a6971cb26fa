package exposition

import "errors"

// ErrUnknownType is returned when a registry entry reports a metric type
// the text format has no rendering for.
var ErrUnknownType = errors.New("unsupported metric type")
