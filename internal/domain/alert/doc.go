// Package alert defines the output of one evaluation: the three mutually
// exclusive alert categories and the per-category results the game displays.
package alert
