package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means seed from the clock
	Rows     int   // Board rows; 0 means the default board
	Columns  int   // Board columns; 0 means the default board
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	Score    int  // Current score
	GameOver bool // The session has ended and only restart is accepted
	Paused   bool
	Won      bool // The 2048 tile has been reached this session
	Stuck    bool // No direction would change the board
	MaxTile  int  // Largest tile value on the board
	Moves    int  // Moves that changed the board
}

// Event is anything a game wants to report outward, such as a merge or a
// placed tile. Kind names it for logs and wire formats.
type Event interface {
	Kind() string
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
