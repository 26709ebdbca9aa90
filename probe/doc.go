// SPDX-License-Identifier: MIT

// Package probe runs the whole experiment once:
//
//	archetypes → reference → spatial → Deconvolver → hypotheses → comparison
//
// The Deconvolver is passed in, so the same scenario can be run against the
// in-module Engine or a stub.
package probe
