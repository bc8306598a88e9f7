package hexgrid

import "fmt"

// Loc identifies one board cell in offset hex coordinates. Odd columns are
// shifted down by half a hex on screen ("brick" layout); Loc itself knows
// nothing about pixels.
type Loc struct {
	X int
	Y int
}

// NullLoc is the distinguished "no location" value. Conversions that fall
// outside the board return it instead of an error.
var NullLoc = Loc{X: -1000, Y: -1000}

// Valid returns true if the location is not NullLoc.
func (l Loc) Valid() bool {
	return l != NullLoc
}

// OddCol returns true for columns whose hexes are shifted down half a hex.
func (l Loc) OddCol() bool {
	return l.X&1 != 0
}

func (l Loc) String() string {
	if !l.Valid() {
		return "(null)"
	}
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// LocSet is a set of locations keyed by value.
type LocSet map[Loc]struct{}

// Add inserts loc and reports whether it was new.
func (s LocSet) Add(loc Loc) bool {
	if _, ok := s[loc]; ok {
		return false
	}
	s[loc] = struct{}{}
	return true
}

// Has reports membership.
func (s LocSet) Has(loc Loc) bool {
	_, ok := s[loc]
	return ok
}
