package game

// Director plays the game automatically, through the same calls a player
// would make.
type Director interface {
	// Init attaches the director to a game
	Init(*Engine)

	// Act performs a single move, returning false if no move could be made
	Act() bool

	// End detaches the director
	End()
}
