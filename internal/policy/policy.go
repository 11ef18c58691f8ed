// Package policy picks moves for the automated opponent. The policy is
// deliberately simple: take an available capture when one exists,
// otherwise any legal move, uniformly at random in both cases.
package policy

import (
	"math/rand"

	"minichess/internal/board"
	"minichess/internal/core"
)

// Picker holds the injected randomness source so tests can seed it.
type Picker struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

// Choose selects one move from the legal move set for the side to move.
// Captures are preferred: if any destination holds an enemy piece, the
// pick is uniform among captures, otherwise uniform among all legal
// moves. An empty legal set is a caller error.
func (p *Picker) Choose(b *board.Board, legal map[core.Square][]core.Square) (core.Move, error) {
	var all, captures []core.Move
	mover := b.Turn()

	for from, dests := range legal {
		for _, to := range dests {
			m := core.Move{From: from, To: to}
			all = append(all, m)
			target := b.PieceAt(to)
			if !target.IsEmpty() && target.Color != mover {
				captures = append(captures, m)
			}
		}
	}

	if len(all) == 0 {
		return core.Move{}, core.ErrNoLegalMoves
	}

	pool := all
	if len(captures) > 0 {
		pool = captures
	}
	return pool[p.rng.Intn(len(pool))], nil
}
