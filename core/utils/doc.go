// Package utils provides small conversion helpers shared across the codebase.
//
// The helpers normalize loosely typed values (notably fields decoded from
// generic JSON payloads, where every number arrives as float64) into the
// concrete Go types the rest of the code expects.
package utils
