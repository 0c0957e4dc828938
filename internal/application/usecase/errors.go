package usecase

import "errors"

// ErrMissingStagingData is returned when a calculation is requested but no
// usable staging exists: either no staging result was ever produced, or the
// persisted result lacks per-loan detail and no raw loan snapshot was
// supplied to reconstruct it. Recoverable by the caller: stage first.
var ErrMissingStagingData = errors.New("no staging data available")
