package 围碁

import (
	"fmt"

	"github.com/gorgonia/playout/game"
	"github.com/pkg/errors"
)

type moveError game.PlayerMove

func (err moveError) Error() string {
	return fmt.Sprintf("Unable to make %v", game.PlayerMove(err))
}

// IsMoveError returns true if the root cause of err is an illegal move.
func IsMoveError(err error) bool {
	_, ok := errors.Cause(err).(moveError)
	return ok
}
