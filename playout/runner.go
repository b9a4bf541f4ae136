package playout

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/gorgonia/playout/game"
)

// Observer is called by a worker after each playout with the playout's result and AMAF record.
// It is called concurrently from all workers. The record is reused once the observer returns.
type Observer func(worker, result int, amaf *AmafMap)

// Runner runs batches of playouts over a fixed number of workers.
//
// Every worker owns its board copies, its ownermap, its AMAF record and its random number generator.
// The workers' ownermaps are merged into the result when they finish.
//
// With a non-zero Seed, the n-th call to Run on a Runner plays the same games as the n-th call on any
// other Runner with the same Config.
type Runner struct {
	Config
	policy Policy
	log    zerolog.Logger
	runs   atomic.Uint64 // batches started, mixed into seeded RNGs

	// Observe is optional. AMAF records are only kept when it is set.
	Observe Observer
}

// Result is the outcome of a batch of playouts.
type Result struct {
	Ownermap  *Ownermap
	Results   []int // result of each playout, from the point of view of the player to move
	Mean      float32
	Wins      int // playouts won by the player to move
	Losses    int
	Judgement *GroupJudgement
	Elapsed   time.Duration
}

// NewRunner creates a Runner. It returns an error if conf is not valid.
func NewRunner(conf Config, policy Policy, logger zerolog.Logger) (*Runner, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.WithMessage(err, "Invalid playout config")
	}
	if policy == nil {
		policy, _ = PolicyByName(conf.Policy)
	}
	return &Runner{
		Config: conf,
		policy: policy,
		log:    logger,
	}, nil
}

// Run plays the given number of playouts from the position returned by fork, with start to move.
// fork is called once per playout, concurrently from all workers, and must return a fresh copy of the
// position each time.
//
// Run stops early and returns the context's error when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, fork func() Board, start game.Player, playouts int) (*Result, error) {
	if !start.IsValid() {
		return nil, errors.Errorf("Cannot run playouts for %v", start)
	}
	if playouts < 1 {
		return nil, errors.Errorf("Expected at least one playout. Got %d", playouts)
	}

	run := r.runs.Add(1) - 1
	pos := fork()
	points := pos.Points()
	workers := r.Workers
	if workers > playouts {
		workers = playouts
	}

	var mu sync.Mutex
	retVal := &Result{
		Ownermap: NewOwnermap(points),
		Results:  make([]int, 0, playouts),
	}

	r.log.Debug().Int("playouts", playouts).Int("workers", workers).Msgf("Starting playouts for %v", start)
	tstart := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		share := playouts / workers
		if w < playouts%workers {
			share++
		}
		g.Go(func() error {
			rng := r.rand(run, w)
			own := NewOwnermap(points)
			var amaf *AmafMap
			if r.Observe != nil {
				amaf = NewAmafMap(points, r.RecordNakade)
			}

			results := make([]int, 0, share)
			for i := 0; i < share; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if amaf != nil {
					amaf.Reset()
				}
				res := Simulate(fork(), start, r.GameLen, amaf, own, r.policy, rng)
				results = append(results, res)
				if r.Observe != nil {
					r.Observe(w, res, amaf)
				}
			}

			mu.Lock()
			retVal.Ownermap.Merge(own)
			retVal.Results = append(retVal.Results, results...)
			mu.Unlock()
			r.log.Trace().Int("worker", w).Int("playouts", share).Msg("Worker done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	retVal.Elapsed = time.Since(tstart)

	var sum int
	for _, res := range retVal.Results {
		sum += res
		switch {
		case res > 0:
			retVal.Wins++
		case res < 0:
			retVal.Losses++
		}
	}
	retVal.Mean = float32(sum) / float32(len(retVal.Results))
	retVal.Judgement = JudgeGroups(pos, retVal.Ownermap, r.Threshold)

	r.log.Info().
		Int("playouts", retVal.Ownermap.Playouts).
		Dur("elapsed", retVal.Elapsed).
		Float32("mean", retVal.Mean).
		Int("wins", retVal.Wins).
		Int("losses", retVal.Losses).
		Msgf("Playouts for %v done", start)
	return retVal, nil
}

func (r *Runner) rand(run uint64, worker int) game.Rand {
	if r.Seed == 0 {
		return frand.New()
	}
	seed := make([]byte, 32)
	binary.LittleEndian.PutUint64(seed, r.Seed)
	binary.LittleEndian.PutUint64(seed[8:], uint64(worker))
	binary.LittleEndian.PutUint64(seed[16:], run)
	return frand.NewCustom(seed, 1024, 12)
}
