// Package health contains the read-only view of the game's roster that the
// alert engine consumes.
//
// Roster, Actor and Condition mirror what the game exposes about its
// colonists: identity, deathrest/deathless state, the designated core body
// part and the ordered list of health conditions. The engine never mutates
// these values; Clone helpers exist for callers that need to hand a snapshot
// to another goroutine.
package health
