package delivery

import "time"

// SetClock replaces the service clock in tests.
func SetClock(s *Service, now func() time.Time) { s.now = now }

// SetIDs replaces the event id generator in tests.
func SetIDs(s *Service, newID func() string) { s.newID = newID }

// SetAdvisoryTimeout replaces the deadline of post-commit notifications in tests.
func SetAdvisoryTimeout(s *Service, d time.Duration) { s.advisoryTimeout = d }
