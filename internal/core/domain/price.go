package domain

import "errors"

// ErrUpstreamUnavailable signals that the market data provider rejected or
// failed the request; rendered as 502 at the HTTP boundary.
var ErrUpstreamUnavailable = errors.New("market data provider unavailable")
