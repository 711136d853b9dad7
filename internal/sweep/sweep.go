// Package sweep implements the coordinator/worker wire protocol a sweep
// driver uses to fan a range of expansion factors out across independent
// simulation peers and gather their correlation vectors back. The
// reference design assigns one OS process per peer and communicates by
// message passing with a fixed four-tag protocol; here each peer is a
// goroutine and the "wire" is a pair of buffered channels standing in
// for point-to-point sends, so the tag semantics are preserved even
// though no bytes cross a process boundary. Workers never share memory:
// each builds and owns its own simulation.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"cosmopm/internal/config"
	"cosmopm/internal/simulation"
)

// group runs a fixed set of goroutines and collects the first error any
// of them returns, mirroring the WaitGroup-barrier shape used by the
// fine-grained worker pool (internal/compute.ForEachChunk) rather than
// pulling in a dedicated task-group dependency for this one call site.
type group struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	firstErr error
	cancel   context.CancelFunc
}

func newGroup(ctx context.Context) (*group, context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	return &group{cancel: cancel}, cctx
}

func (g *group) Go(fn func() error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := fn(); err != nil {
			g.mu.Lock()
			if g.firstErr == nil {
				g.firstErr = err
				g.cancel()
			}
			g.mu.Unlock()
		}
	}()
}

func (g *group) Wait() error {
	g.wg.Wait()
	g.cancel()
	return g.firstErr
}

// Tag identifies a message's role in the coordinator/peer protocol.
type Tag int

const (
	// TagMinExpansion carries one float64, coordinator to peer: the
	// minimum expansion factor for the sweep.
	TagMinExpansion Tag = 0
	// TagExpansionStep carries one float64, coordinator to peer: the
	// per-rank expansion factor increment.
	TagExpansionStep Tag = 1
	// TagCorrelationSize carries one uint32, peer to coordinator: the
	// length of the correlation vector that follows.
	TagCorrelationSize Tag = 2
	// TagCorrelationValues carries `size` float64s, peer to coordinator:
	// the correlation values themselves.
	TagCorrelationValues Tag = 3
)

// message is the unit exchanged over a link. Only the field matching its
// Tag is populated.
type message struct {
	Tag     Tag
	Float64 float64
	Uint32  uint32
	Floats  []float64
}

// link is a point-to-point channel pair between the coordinator and one
// peer, playing the role of an MPI rank-to-rank connection.
type link struct {
	toPeer        chan message
	toCoordinator chan message
}

func newLink() *link {
	return &link{
		toPeer:        make(chan message, 2),
		toCoordinator: make(chan message, 2),
	}
}

func (l *link) sendToPeer(ctx context.Context, m message) error {
	select {
	case l.toPeer <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *link) recvFromCoordinator(ctx context.Context) (message, error) {
	select {
	case m := <-l.toPeer:
		return m, nil
	case <-ctx.Done():
		return message{}, ctx.Err()
	}
}

func (l *link) sendToCoordinator(ctx context.Context, m message) error {
	select {
	case l.toCoordinator <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// recvCorrelation blocks until both the Tag 2 size message and the Tag 3
// value message have arrived on this link, then returns the assembled
// correlation vector.
func (l *link) recvCorrelation(ctx context.Context) ([]float64, error) {
	var size uint32
	var haveSize bool
	var values []float64
	var haveValues bool

	for !haveSize || !haveValues {
		select {
		case m := <-l.toCoordinator:
			switch m.Tag {
			case TagCorrelationSize:
				size, haveSize = m.Uint32, true
			case TagCorrelationValues:
				values, haveValues = m.Floats, true
			default:
				return nil, fmt.Errorf("sweep: unexpected tag %d from peer", m.Tag)
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if int(size) != len(values) {
		return nil, fmt.Errorf("sweep: peer declared size %d but sent %d values", size, len(values))
	}
	return values, nil
}

// Run fans base out across numWorkers peers with expansion factors
// a_min, a_min+step, ..., a_min+(numWorkers-1)*step, runs every peer's
// simulation to completion, and gathers each peer's correlation vector.
// Rank 0 is the coordinator: per the protocol it computes its own
// expansion factor directly as aMin rather than round-tripping a message
// to itself, but it still runs its own simulation and contributes its own
// correlation vector to the result, indexed at rank 0. numWorkers < 2 is
// rejected at the boundary, since the reference design derives the
// per-rank step from numWorkers-1 and would divide by zero otherwise.
func Run(ctx context.Context, base *config.Config, numWorkers int, aMin, aStep float64) ([][]float64, error) {
	if numWorkers < 2 {
		return nil, fmt.Errorf("sweep: numWorkers must be at least 2, got %d", numWorkers)
	}

	links := make([]*link, numWorkers)
	for r := range links {
		links[r] = newLink()
	}

	results := make([][]float64, numWorkers)
	g, gctx := newGroup(ctx)

	// Coordinator side: for every rank > 0, send the two scalars and
	// gather the correlation vector back. Rank 0 runs inline below
	// instead, since the coordinator is rank 0.
	for rank := 1; rank < numWorkers; rank++ {
		rank := rank
		g.Go(func() error {
			l := links[rank]
			if err := l.sendToPeer(gctx, message{Tag: TagMinExpansion, Float64: aMin}); err != nil {
				return fmt.Errorf("sweep: send min-expansion to rank %d: %w", rank, err)
			}
			if err := l.sendToPeer(gctx, message{Tag: TagExpansionStep, Float64: aStep}); err != nil {
				return fmt.Errorf("sweep: send expansion-step to rank %d: %w", rank, err)
			}
			values, err := l.recvCorrelation(gctx)
			if err != nil {
				return fmt.Errorf("sweep: gather correlation from rank %d: %w", rank, err)
			}
			results[rank] = values
			return nil
		})
	}

	// Peer side: for every rank > 0, receive the two scalars, compute
	// a_peer = a_min + rank*step, run an independent simulation, and
	// send the correlation vector back.
	for rank := 1; rank < numWorkers; rank++ {
		rank := rank
		g.Go(func() error {
			l := links[rank]

			minMsg, err := l.recvFromCoordinator(gctx)
			if err != nil {
				return fmt.Errorf("sweep: rank %d: recv min-expansion: %w", rank, err)
			}
			stepMsg, err := l.recvFromCoordinator(gctx)
			if err != nil {
				return fmt.Errorf("sweep: rank %d: recv expansion-step: %w", rank, err)
			}

			a := minMsg.Float64 + float64(rank)*stepMsg.Float64

			cfg := base.Clone()
			cfg.Expansion = a
			sim, err := simulation.New(cfg)
			if err != nil {
				return fmt.Errorf("sweep: rank %d: %w", rank, err)
			}
			sim.Run()

			result := sim.Correlate()
			if err := l.sendToCoordinator(gctx, message{Tag: TagCorrelationSize, Uint32: uint32(len(result.Values))}); err != nil {
				return fmt.Errorf("sweep: rank %d: send size: %w", rank, err)
			}
			if err := l.sendToCoordinator(gctx, message{Tag: TagCorrelationValues, Floats: result.Values}); err != nil {
				return fmt.Errorf("sweep: rank %d: send values: %w", rank, err)
			}
			return nil
		})
	}

	// Rank 0: the coordinator's own simulation, a = a_min.
	g.Go(func() error {
		cfg := base.Clone()
		cfg.Expansion = aMin
		sim, err := simulation.New(cfg)
		if err != nil {
			return fmt.Errorf("sweep: rank 0: %w", err)
		}
		sim.Run()
		results[0] = sim.Correlate().Values
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
