// Package snapshot converts rosters and reports to and from
// google.protobuf.Struct.
//
// The game writes its roster as JSON; the same document travels over gRPC
// as a Struct, so one codec serves the snapshot file and the wire. Keys are
// snake_case. Absent keys decode to zero values; keys with the wrong JSON
// type are errors naming the offending path.
package snapshot
