package gui

import (
	"context"
	"time"
)

// slowTPS is the update rate used for generation delays of a second or more,
// where ebiten cannot tick slowly enough on its own.
const slowTPS = 10

// pacer maps ebiten's fixed update rate onto the configured generation delay
// and watches for shutdown.
type pacer struct {
	ctx   context.Context
	every int // updates per generation
	count int
}

// newPacer returns a pacer for tick and the ebiten TPS it was computed for
func newPacer(ctx context.Context, tick time.Duration) (*pacer, int) {
	tps, every := pacing(tick)
	return &pacer{ctx: ctx, every: every}, tps
}

// pacing picks an update rate and how many updates make up one generation.
// Delays under a second run one generation per update; longer ones are
// rounded to the nearest 1/slowTPS of a second.
func pacing(tick time.Duration) (tps, every int) {
	switch {
	case tick <= 0:
		return 1, 1
	case tick < time.Second:
		return int(time.Second / tick), 1
	}
	step := time.Second / slowTPS
	return slowTPS, max(1, int((tick+step/2)/step))
}

// due counts one update and reports whether a generation should advance on it
func (p *pacer) due() bool {
	p.count++
	if p.count < p.every {
		return false
	}
	p.count = 0
	return true
}

// stopped reports whether the window should close because ctx ended
func (p *pacer) stopped() bool {
	return p.ctx.Err() != nil
}
