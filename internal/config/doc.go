// Package config defines the settings shared by the medical alert binaries
// and provides helpers to load, validate and save them in YAML format.
//
// Validate fills defaults for everything except the server address, so a
// minimal file with only server_addr is a working configuration.
package config
