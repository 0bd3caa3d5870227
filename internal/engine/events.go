package engine

// Event is a notification produced by the Controller.
// Kind returns a stable lowercase name for logs and wire formats.
type Event interface {
	Kind() string
}

// MergeEvent reports that two tiles of the same power combined.
// Power is the power of each source tile, not of the resulting tile.
type MergeEvent struct {
	Power Power `json:"power"`
}

// Result returns the power of the tile produced by the merge.
func (e MergeEvent) Result() Power {
	return e.Power + 1
}

// SpawnRequest asks for a new tile. A nil Position or Power is chosen at
// random by the Spawner; a set field is honored verbatim.
type SpawnRequest struct {
	Position *int   `json:"position,omitempty"`
	Power    *Power `json:"power,omitempty"`
}

// RandomTile requests a tile with random position and power.
func RandomTile() SpawnRequest {
	return SpawnRequest{}
}

// TileAt requests a tile of power p at linear index i.
func TileAt(i int, p Power) SpawnRequest {
	return SpawnRequest{Position: &i, Power: &p}
}

// At returns a copy of r pinned to linear index i.
func (r SpawnRequest) At(i int) SpawnRequest {
	r.Position = &i
	return r
}

// WithPower returns a copy of r with a fixed power.
func (r SpawnRequest) WithPower(p Power) SpawnRequest {
	r.Power = &p
	return r
}

// TilePlaced reports a tile written to the grid by a spawn.
type TilePlaced struct {
	Index int   `json:"index"`
	Power Power `json:"power"`
}

// LossSignal reports that a spawn batch could not fit on the board.
type LossSignal struct{}

// WinSignal reports the first 2048 tile of the session.
type WinSignal struct{}

func (MergeEvent) Kind() string   { return "merge" }
func (SpawnRequest) Kind() string { return "spawn_request" }
func (TilePlaced) Kind() string   { return "tile_placed" }
func (LossSignal) Kind() string   { return "loss" }
func (WinSignal) Kind() string    { return "win" }
