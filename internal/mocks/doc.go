// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes function fields so a test can
// override exactly the calls it cares about; unset fields fall back to a
// small in-memory default.
package mocks
