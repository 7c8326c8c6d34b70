// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client wrapper for the alert service that
// applies per-call timeouts and converts between wire documents and domain
// types.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
