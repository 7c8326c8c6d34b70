// Package eval evaluates one snapshot file locally and prints the alerts.
package eval
