// Package checker polls the alert server and logs the firing medical alerts.
package checker
