package passes

import "errors"

// Sentinel kinds for pass selection errors.
var (
	ErrPhaseOutOfRange = errors.New("phase out of range")
	ErrUnknownPlayer   = errors.New("player not in lineup")
	ErrUnsupported     = errors.New("unsupported filter")
	ErrOffPitch        = errors.New("pass outside the pitch")
)
