package engine

import (
	"math/rand/v2"
	"testing"
)

func newTestController(shape Shape, opts ...Option) *Controller {
	return NewController(shape, rand.New(rand.NewPCG(9, 9)), opts...)
}

func kinds(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Kind()
	}
	return out
}

func equalKinds(events []Event, want ...string) bool {
	got := kinds(events)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestControllerReset(t *testing.T) {
	c := newTestController(DefaultShape())
	out := c.Reset()

	if len(out.Placed) != InitialTiles {
		t.Fatalf("Reset() placed %d tiles, want %d", len(out.Placed), InitialTiles)
	}
	if !equalKinds(out.Events, "spawn_request", "spawn_request", "tile_placed", "tile_placed") {
		t.Errorf("Reset() events = %v", kinds(out.Events))
	}
	if got := c.Grid().Occupied(); got != InitialTiles {
		t.Errorf("occupied cells = %d, want %d", got, InitialTiles)
	}
	if c.Score() != 0 || c.Moves() != 0 || c.State() != Idle {
		t.Errorf("after Reset: score %d moves %d state %s", c.Score(), c.Moves(), c.State())
	}
}

func TestControllerUnchangedMove(t *testing.T) {
	c := newTestController(NewShape(1, 4))
	c.SpawnTiles(TileAt(0, 1), TileAt(1, 2))
	before := c.Grid()

	out := c.ApplyMove(Left)

	if out.Changed {
		t.Error("move against the wall should not change the board")
	}
	if len(out.Events) != 0 {
		t.Errorf("unchanged move emitted %v", kinds(out.Events))
	}
	if !c.Grid().Equal(before) {
		t.Errorf("grid = %v, want %v", c.Grid(), before)
	}
	if c.Moves() != 0 {
		t.Errorf("Moves() = %d, want 0", c.Moves())
	}
}

func TestControllerChangedMove(t *testing.T) {
	c := newTestController(NewShape(1, 4))
	c.SpawnTiles(TileAt(0, 1), TileAt(1, 1), TileAt(2, 2))

	out := c.ApplyMove(Left)

	if !out.Changed {
		t.Fatal("move should change the board")
	}
	if !equalKinds(out.Events, "merge", "spawn_request", "tile_placed") {
		t.Errorf("events = %v, want merge, spawn_request, tile_placed", kinds(out.Events))
	}
	if c.Score() != 2 {
		t.Errorf("Score() = %d, want 2", c.Score())
	}
	if c.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", c.Moves())
	}

	g := c.Grid()
	if g[0] != 2 || g[1] != 2 {
		t.Errorf("grid = %v, want leading 2 2", g)
	}
	if len(out.Placed) != 1 || (out.Placed[0].Index != 2 && out.Placed[0].Index != 3) {
		t.Errorf("placed = %+v, want one tile in cell 2 or 3", out.Placed)
	}
	if g.Occupied() != 3 {
		t.Errorf("occupied = %d, want 3", g.Occupied())
	}
}

func TestControllerLoss(t *testing.T) {
	c := newTestController(NewShape(1, 2))
	c.SpawnTiles(TileAt(0, 1))

	out := c.SpawnTiles(RandomTile(), RandomTile())

	if !out.Lost {
		t.Fatal("batch larger than the free space should lose")
	}
	if !equalKinds(out.Events, "spawn_request", "spawn_request", "loss") {
		t.Errorf("events = %v", kinds(out.Events))
	}
	if c.State() != Lost {
		t.Errorf("State() = %s, want lost", c.State())
	}
	if !c.Grid().Equal(Grid{1, 0}) {
		t.Errorf("grid = %v, want untouched [1 0]", c.Grid())
	}

	move := c.ApplyMove(Right)
	if !move.Lost || move.Changed || len(move.Events) != 0 {
		t.Errorf("move after loss = %+v, want lost with no effect", move)
	}
	if again := c.SpawnTiles(TileAt(1, 1)); !again.Lost || len(again.Events) != 0 {
		t.Errorf("spawn after loss = %+v, want lost with no effect", again)
	}

	c.Reset()
	if c.State() != Idle {
		t.Errorf("State() after Reset = %s, want idle", c.State())
	}
}

func TestControllerWin(t *testing.T) {
	c := newTestController(NewShape(2, 4))
	c.SpawnTiles(TileAt(0, 10), TileAt(1, 10))

	out := c.ApplyMove(Left)
	if !out.Won {
		t.Fatal("merging two 1024 tiles should win")
	}
	if !equalKinds(out.Events, "merge", "win", "spawn_request", "tile_placed") {
		t.Errorf("events = %v", kinds(out.Events))
	}
	if c.Congratulation() != Pending {
		t.Errorf("Congratulation() = %s, want pending", c.Congratulation())
	}

	c.Acknowledge()
	if c.Congratulation() != Congratulated {
		t.Errorf("Congratulation() = %s, want congratulated", c.Congratulation())
	}

	c.SpawnTiles(TileAt(4, 10), TileAt(5, 10))
	again := c.ApplyMove(Left)
	if again.Won {
		t.Error("second 2048 should not raise the win signal")
	}
	if c.Score() != 2048 {
		t.Errorf("Score() = %d, want 2048", c.Score())
	}
}

func TestControllerObserver(t *testing.T) {
	var seen []Event
	c := newTestController(DefaultShape(), WithObserver(func(e Event) {
		seen = append(seen, e)
	}))

	var all []Event
	all = append(all, c.Reset().Events...)
	for _, dir := range Directions() {
		all = append(all, c.ApplyMove(dir).Events...)
	}

	if !equalKinds(seen, kinds(all)...) {
		t.Errorf("observer saw %v, outcomes returned %v", kinds(seen), kinds(all))
	}
}

func TestControllerWeights(t *testing.T) {
	c := newTestController(NewShape(1, 4), WithWeights([]Weight{{Power: 3, Weight: 1}}))
	out := c.Reset()

	for _, p := range out.Placed {
		if p.Power != 3 {
			t.Errorf("placed power %d, want 3", p.Power)
		}
	}
}

func TestControllerInvalidDirection(t *testing.T) {
	c := newTestController(DefaultShape())
	defer func() {
		if recover() == nil {
			t.Error("ApplyMove with an invalid direction should panic")
		}
	}()
	c.ApplyMove(Direction(7))
}
