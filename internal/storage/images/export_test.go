package images

import "time"

// SetClock pins the clock used for file names.
func (s *Store) SetClock(now func() time.Time) { s.now = now }
