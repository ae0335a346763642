package service

import "time"

// timeNow is indirected for tests that need deterministic timestamps.
var timeNow = func() time.Time { return time.Now().UTC() }
