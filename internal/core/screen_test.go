package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(30, 12)

	if s.Width() != 30 || s.Height() != 12 {
		t.Fatalf("dimensions = %dx%d, expected 30x12", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)

	s.SetColored(3, 2, '8', ColorOrange)
	if c := s.GetCell(3, 2); c.Rune != '8' || c.Color != ColorOrange {
		t.Errorf("GetCell(3, 2) = %+v, expected orange '8'", c)
	}

	s.Set(3, 2, 'x')
	if c := s.GetCell(3, 2); c.Color != ColorDefault {
		t.Errorf("Set should reset color, got %v", c.Color)
	}

	// Out of bounds writes are ignored.
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(10, 0, 'A', ColorRed)
	s.SetColored(0, 4, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(6, 3)
	s.Fill('#')
	if s.Row(1) != "######" {
		t.Errorf("Row(1) after Fill = %q", s.Row(1))
	}

	s.DrawTextColored(0, 0, "abc", ColorGreen)
	s.Clear()
	for y := range 3 {
		if s.Row(y) != "      " {
			t.Errorf("Row(%d) after Clear = %q", y, s.Row(y))
		}
	}
	if s.GetCell(0, 0).Color != ColorDefault {
		t.Error("Clear should drop colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "2048", ColorYellow)

	for i, ch := range "2048" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorYellow {
			t.Errorf("cell (%d, 1) = %+v, expected yellow %q", 2+i, c, ch)
		}
	}

	// Clipped at the right edge.
	s.DrawText(18, 0, "Score")
	if s.Get(18, 0) != 'S' || s.Get(19, 0) != 'c' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "─a─")

	if s.Get(1, 0) != 'a' || s.Get(2, 0) != '─' {
		t.Errorf("multibyte runes should take one cell each, row = %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCenteredColored(2, "WIN", ColorBrightGreen)

	x := (20 - 3) / 2
	if s.Get(x, 2) != 'W' || s.Get(x+2, 2) != 'N' {
		t.Errorf("centered text misplaced, row = %q", s.Row(2))
	}
	if s.GetCell(x, 2).Color != ColorBrightGreen {
		t.Error("centered text lost its color")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorCyan)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		c := s.GetCell(pos[0], pos[1])
		if c.Rune != want || c.Color != ColorCyan {
			t.Errorf("corner %v = %+v, expected cyan %q", pos, c, want)
		}
	}

	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawHLine(2, 2, 5, '-')
	s.DrawVLine(3, 4, 4, '|')

	for x := 2; x < 7; x++ {
		if s.Get(x, 2) != '-' {
			t.Errorf("DrawHLine: expected '-' at (%d, 2), got %q", x, s.Get(x, 2))
		}
	}
	for y := 4; y < 8; y++ {
		if s.Get(3, y) != '|' {
			t.Errorf("DrawVLine: expected '|' at (3, %d), got %q", y, s.Get(3, y))
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawText(0, 0, "2   ")
	s.DrawText(0, 1, " 4  ")
	s.DrawText(0, 2, "  8 ")

	expected := "2   \n 4  \n  8 "
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorRed)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorRed {
		t.Error("resize should keep colors")
	}
	if s.Row(7) != strings.Repeat(" ", 15) {
		t.Errorf("new rows should be blank, got %q", s.Row(7))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)
	if got := s.Row(-1); got != "          " {
		t.Errorf("out of bounds row should be spaces, got %q", got)
	}
}
