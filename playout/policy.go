package playout

import (
	"github.com/pkg/errors"

	"github.com/gorgonia/playout/game"
)

// Light is the plain random policy: it never suggests a move and permits every legal one.
type Light struct{}

func (Light) Choose(b Board, p game.Player) game.Single          { return game.Pass }
func (Light) Permit(b Board, p game.Player, pt game.Single) bool { return true }

// Capture is a policy that answers the last move locally. It captures the chain that was just played
// if it is in atari, and otherwise runs away with any of its own chains the last move put in atari.
// Random moves that put a chain of more than one stone into atari without capturing are not permitted.
//
// Capture needs a board that implements Tactics. On other boards it behaves like Light.
type Capture struct{}

func (Capture) Choose(b Board, p game.Player) game.Single {
	t, ok := b.(Tactics)
	if !ok {
		return game.Pass
	}
	last := b.LastMove()
	if last.Single < 0 || last.Player != game.Opponent(p) {
		return game.Pass
	}
	if libs := t.Liberties(last.Single); len(libs) == 1 {
		return libs[0]
	}
	for _, adj := range t.Adjacent(last.Single) {
		if b.At(adj) != game.Colour(p) {
			continue
		}
		if libs := t.Liberties(adj); len(libs) == 1 {
			return libs[0]
		}
	}
	return game.Pass
}

func (Capture) Permit(b Board, p game.Player, pt game.Single) bool {
	t, ok := b.(Tactics)
	if !ok {
		return true
	}
	own := game.Colour(p)
	libs := make(map[game.Single]struct{})
	var connects bool
	for _, adj := range t.Adjacent(pt) {
		switch b.At(adj) {
		case game.None:
			libs[adj] = struct{}{}
		case own:
			connects = true
			for _, l := range t.Liberties(adj) {
				if l != pt {
					libs[l] = struct{}{}
				}
			}
		default:
			if len(t.Liberties(adj)) == 1 {
				return true // captures
			}
		}
	}
	return !connects || len(libs) > 1
}

// PolicyByName returns the policy with the given name: "light" or "capture".
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "light":
		return Light{}, nil
	case "capture":
		return Capture{}, nil
	}
	return nil, errors.Errorf("Unknown playout policy %q", name)
}
