// Package logging builds the zap logger used by the wt2003s command and
// adapts it to the player.Logger interface.
package logging
