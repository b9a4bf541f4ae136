package playout

import (
	"github.com/chewxy/math32"
	"github.com/rs/zerolog"

	"github.com/gorgonia/playout/game"
)

var logger = zerolog.Nop()

// SetLogger sets the logger used by Simulate. Illegal urgent moves are reported at trace level.
func SetLogger(l zerolog.Logger) { logger = l }

// Simulate plays b out to the end, starting with start to move, and returns the result
// from the point of view of start: twice the final score, positive when start won.
//
// The playout is allowed gamelen minus the moves already on the board, but never fewer than MinGameLen.
// It ends early when both players pass in a row. A pass already on the board counts towards that.
//
// amaf and own are optional. When given, every non-pass move is recorded in amaf and the final position
// is counted in own.
func Simulate(b Board, start game.Player, gamelen int, amaf *AmafMap, own *Ownermap, policy Policy, r game.Rand) int {
	gamelen -= b.MoveNumber()
	if gamelen < MinGameLen {
		gamelen = MinGameLen
	}

	var passes int
	if b.MoveNumber() > 0 && b.LastMove().IsPass() {
		passes = 1
	}

	player := start
	permit := func(pt game.Single) bool { return policy.Permit(b, player, pt) }
	for ; gamelen > 0 && passes < 2; gamelen-- {
		pt := policy.Choose(b, player)
		if !pt.IsPass() {
			if err := b.Apply(game.PlayerMove{Player: player, Single: pt}); err != nil {
				logger.Trace().Err(err).Int("move", b.MoveNumber()).Msg("Urgent move is illegal. Playing randomly instead")
				pt = game.Pass
			}
		}
		if pt.IsPass() {
			pt = b.PlayRandom(player, permit, r)
		}

		if pt.IsPass() {
			passes++
		} else {
			passes = 0
			if amaf != nil {
				amaf.Record(pt, game.Colour(player))
			}
		}
		player = game.Opponent(player)
	}

	score := b.FastScore()
	result := int(math32.Trunc(score * 2))
	if start != game.WhiteP {
		result = -result
	}

	if own != nil {
		own.Record(b)
	}
	return result
}
