package playout

import (
	"fmt"
	"sort"

	"github.com/gorgonia/playout/game"
)

// PointJudgement is the verdict on the ownership of a point. The stone colours share their values with game.Colour.
type PointJudgement int32

const (
	Dame PointJudgement = PointJudgement(game.None)
	BlackPoint          = PointJudgement(game.Black)
	WhitePoint          = PointJudgement(game.White)
	Undetermined        = PointJudgement(game.MaxColour)
)

func (pj PointJudgement) String() string {
	switch pj {
	case Dame:
		return "dame"
	case BlackPoint:
		return "black"
	case WhitePoint:
		return "white"
	case Undetermined:
		return "undetermined"
	}
	return fmt.Sprintf("PointJudgement(%d)", int32(pj))
}

// Colour returns the colour that owns the point, or game.None when no colour does.
func (pj PointJudgement) Colour() game.Colour {
	switch pj {
	case BlackPoint, WhitePoint:
		return game.Colour(pj)
	}
	return game.None
}

// JudgePoint decides who owns p. A point that was dame in at least thres of the playouts is dame,
// otherwise it belongs to the colour that, together with the dame count, reaches thres.
//
// The checks are made in that order, so a point that qualifies as dame is never awarded to a colour.
func JudgePoint(o *Ownermap, p game.Single, thres float32) PointJudgement {
	total := float32(o.Playouts) * thres
	n := o.Map[p][game.None]
	b := o.Map[p][game.Black]
	w := o.Map[p][game.White]

	switch {
	case float32(n) >= total:
		return Dame
	case float32(n+b) >= total:
		return BlackPoint
	case float32(n+w) >= total:
		return WhitePoint
	}
	return Undetermined
}

// GroupState is the verdict on a group.
type GroupState byte

const (
	Unset GroupState = iota
	Alive
	Dead
	Unknown
)

func (gs GroupState) String() string {
	switch gs {
	case Unset:
		return "unset"
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	case Unknown:
		return "unknown"
	}
	return fmt.Sprintf("GroupState(%d)", byte(gs))
}

// Join combines two verdicts on the same group. Unset is the identity and Unknown absorbs everything else;
// two different verdicts make the group Unknown.
func Join(a, b GroupState) GroupState {
	switch {
	case a == Unset:
		return b
	case b == Unset:
		return a
	case a == b:
		return a
	}
	return Unknown
}

// stoneVerdict is the verdict a single stone of colour c casts on its group when its point is judged pj.
func stoneVerdict(c game.Colour, pj PointJudgement) GroupState {
	switch pj {
	case Undetermined, Dame:
		return Unknown
	case PointJudgement(c):
		return Alive
	case PointJudgement(c.Other()):
		return Dead
	}
	return Unknown
}

// GroupJudgement holds the verdicts on all the groups of a board.
type GroupJudgement struct {
	Threshold float32
	States    map[game.GroupID]GroupState
}

// JudgeGroups decides the state of every group on b from the ownership statistics in o.
//
// A group is alive if every one of its stones stands on a point judged to belong to its colour,
// and dead if every one of them stands on a point judged to belong to the other colour. In all other
// cases the group is Unknown.
func JudgeGroups(b Board, o *Ownermap, thres float32) *GroupJudgement {
	retVal := &GroupJudgement{
		Threshold: thres,
		States:    make(map[game.GroupID]GroupState),
	}
	for i := 0; i < b.Points(); i++ {
		p := game.Single(i)
		g := b.GroupAt(p)
		if g == game.NoGroup {
			continue
		}
		pj := JudgePoint(o, p, thres)
		retVal.States[g] = Join(retVal.States[g], stoneVerdict(b.At(p), pj))
	}
	return retVal
}

// State returns the verdict on g. Groups that were never judged are Unset.
func (j *GroupJudgement) State(g game.GroupID) GroupState { return j.States[g] }

// Groups returns the groups in state gs, in ascending order.
func (j *GroupJudgement) Groups(gs GroupState) []game.GroupID {
	var retVal []game.GroupID
	for g, s := range j.States {
		if s == gs {
			retVal = append(retVal, g)
		}
	}
	sort.Slice(retVal, func(i, j int) bool { return retVal[i] < retVal[j] })
	return retVal
}

func (j *GroupJudgement) Alive() []game.GroupID   { return j.Groups(Alive) }
func (j *GroupJudgement) Dead() []game.GroupID    { return j.Groups(Dead) }
func (j *GroupJudgement) Unknown() []game.GroupID { return j.Groups(Unknown) }

// Stones returns the points of b occupied by groups in state gs.
func (j *GroupJudgement) Stones(b Board, gs GroupState) []game.Single {
	var retVal []game.Single
	for i := 0; i < b.Points(); i++ {
		p := game.Single(i)
		if g := b.GroupAt(p); g != game.NoGroup && j.States[g] == gs {
			retVal = append(retVal, p)
		}
	}
	return retVal
}
