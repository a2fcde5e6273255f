package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer pulls audio from a source whenever oto asks for more.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	mu       sync.Mutex // guards the renderer against overlapping reads
	renderer *renderer
}

// NewOtoPlayer opens the oto context. Only one oto context may exist per
// process.
func NewOtoPlayer(src Source, opts Options) (*OtoPlayer, error) {
	opts = opts.withDefaults()

	op := &oto.NewContextOptions{
		SampleRate:   opts.SampleRate,
		ChannelCount: Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(opts.BlockFrames) * time.Second / time.Duration(opts.SampleRate),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready

	p := &OtoPlayer{
		ctx:      ctx,
		renderer: newRenderer(src, opts),
	}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read renders whole frames into buf. It implements io.Reader for oto.
func (p *OtoPlayer) Read(buf []byte) (int, error) {
	frames := len(buf) / (4 * Channels)
	if frames == 0 {
		return 0, nil
	}

	p.mu.Lock()
	p.renderer.render(buf, frames)
	p.mu.Unlock()

	return frames * 4 * Channels, nil
}

// Start begins playback
func (p *OtoPlayer) Start() {
	p.player.Play()
}

// Err reports a failure of the player or of the oto context
func (p *OtoPlayer) Err() error {
	if err := p.player.Err(); err != nil {
		return err
	}
	if err := p.ctx.Err(); err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	return nil
}

// Close stops playback and releases the player
func (p *OtoPlayer) Close() error {
	return p.player.Close()
}

// PlayOto renders src through oto until ctx is cancelled.
func PlayOto(ctx context.Context, src Source, opts Options) error {
	opts = opts.withDefaults()

	p, err := NewOtoPlayer(src, opts)
	if err != nil {
		return err
	}
	defer p.Close()

	p.Start()
	opts.Logger.Info("playing through oto at %d Hz", opts.SampleRate)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return p.Err()
		case <-ticker.C:
			if err := p.Err(); err != nil {
				return err
			}
		}
	}
}

// Play renders src through the named backend until ctx is cancelled.
func Play(ctx context.Context, backend Backend, src Source, opts Options) error {
	switch backend {
	case BackendMalgo:
		return PlayMalgo(ctx, src, opts)
	case BackendOto:
		return PlayOto(ctx, src, opts)
	default:
		return fmt.Errorf("unknown audio backend %q", backend)
	}
}
