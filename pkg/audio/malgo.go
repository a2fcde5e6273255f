package audio

import (
	"context"
	"fmt"

	"github.com/gen2brain/malgo"

	"github.com/justyntemme/polysynth/pkg/framework/debug"
)

// PlayMalgo renders src to the default playback device until ctx is
// cancelled.
func PlayMalgo(ctx context.Context, src Source, opts Options) error {
	opts = opts.withDefaults()
	log := opts.Logger

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, log.Sink(debug.LogLevelDebug))
	if err != nil {
		return fmt.Errorf("malgo context: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = Channels
	cfg.SampleRate = uint32(opts.SampleRate)
	cfg.PeriodSizeInFrames = uint32(opts.BlockFrames)

	r := newRenderer(src, opts)
	recv := func(out, _ []byte, framecount uint32) {
		if framecount == 0 {
			return
		}
		r.render(out, int(framecount))
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: recv,
	})
	if err != nil {
		return fmt.Errorf("malgo device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("malgo start: %w", err)
	}
	log.Info("playing through malgo at %d Hz", opts.SampleRate)

	<-ctx.Done()

	if err := device.Stop(); err != nil {
		log.Warn("malgo stop: %v", err)
	}
	return nil
}
