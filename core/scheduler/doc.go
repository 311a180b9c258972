// Package scheduler assigns arriving vessels to berths.
//
// Vessels are taken first-come-first-served by arrival date. Each one is
// placed on the capacity-eligible berth whose earliest free slot gives the
// lowest berth fee plus waiting cost; the choice is final for the run.
package scheduler
