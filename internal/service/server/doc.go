// Package server runs the medical alert gRPC server.
//
// It evaluates rosters on request, re-evaluates the watched snapshot file
// whenever the game rewrites it and keeps the latest report for pollers.
package server
