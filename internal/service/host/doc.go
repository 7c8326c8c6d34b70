// Package host tells whether the game process is still running, so the
// checker can stop polling when the player quits.
package host
