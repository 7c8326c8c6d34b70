// Package snapshot reads the roster snapshot the game writes to disk.
//
// The FileRepository loads and saves the snapshot as JSON through protojson
// so the file and the gRPC wire share one schema. Watch reloads the file
// whenever the game rewrites it.
package snapshot
