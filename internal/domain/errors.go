package domain

import "errors"

// Error classes of the run. Fetch, parse and delivery failures are fatal and
// abort the run; coercion failures only ever drop the offending row.
var (
	ErrFetch   = errors.New("feed fetch failed")
	ErrParse   = errors.New("feed parse failed")
	ErrCoerce  = errors.New("field coercion failed")
	ErrDeliver = errors.New("artifact delivery failed")
)
