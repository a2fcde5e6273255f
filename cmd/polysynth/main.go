// Command polysynth plays the instrument live through the sound card, or
// renders it to a WAV file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/polysynth/pkg/audio"
	"github.com/justyntemme/polysynth/pkg/dsp/analysis"
	"github.com/justyntemme/polysynth/pkg/dsp/gain"
	"github.com/justyntemme/polysynth/pkg/dsp/pan"
	"github.com/justyntemme/polysynth/pkg/framework/debug"
	"github.com/justyntemme/polysynth/pkg/midi"
	"github.com/justyntemme/polysynth/pkg/synth"
)

var (
	verboseFlag  = flag.Bool("v", false, "log at debug level")
	logLevelFlag = flag.String("log-level", "info", "log level: debug, info, warn, error, off")
	logFileFlag  = flag.String("log-file", "", "append logs to this file instead of stderr")

	backendFlag = flag.String("backend", "malgo", "audio backend: malgo or oto")
	renderFlag  = flag.String("render", "", "render to this WAV file instead of playing")
	rateFlag    = flag.Int("rate", 44100, "sample rate in Hz")
	blockFlag   = flag.Int("block", 512, "frames per rendered block")
	oscFlag     = flag.Int("oscillators", synth.DefaultOscillators, "number of oscillators")
	gainFlag    = flag.Float64("gain", 0, "output gain in dB")
	panLawFlag  = flag.String("pan-law", "balance", "pan law: balance, linear or constant-power")

	notesFlag    = flag.String("notes", "", "comma separated MIDI pitches to start with, e.g. 60,64,67")
	velocityFlag = flag.Uint("velocity", 100, "velocity of the -notes pitches")
	gateFlag     = flag.Duration("gate", 0, "release the -notes pitches after this long; 0 holds them")
	secondsFlag  = flag.Float64("seconds", 0, "stop after this many seconds; required with -render")
	patchFlag    = flag.String("patch", "", "JSON file of parameter values to load")

	midiFlag    = flag.String("midi", "", "MIDI input port to listen on; \"-\" selects the first port")
	portsFlag   = flag.Bool("list-ports", false, "list MIDI input ports and exit")
	meterFlag   = flag.Bool("meter", false, "print an output level meter while playing")
	analyzeFlag = flag.Bool("analyze", false, "log the spectrum peak and stereo balance of a -render")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "polysynth: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() (*debug.Logger, io.Closer, error) {
	level, err := debug.ParseLevel(*logLevelFlag)
	if err != nil {
		return nil, nil, err
	}
	if *verboseFlag {
		level = debug.LogLevelDebug
	}

	log := debug.Default()
	var closer io.Closer = io.NopCloser(nil)
	if *logFileFlag != "" {
		log, closer, err = debug.NewFileLogger(*logFileFlag, "polysynth", debug.DefaultFlags)
		if err != nil {
			return nil, nil, err
		}
	}
	log.SetLevel(level)
	return log, closer, nil
}

func run() error {
	log, closer, err := setupLogging()
	if err != nil {
		return err
	}
	defer closer.Close()

	if *portsFlag {
		for _, name := range midi.InPorts() {
			fmt.Println(name)
		}
		return nil
	}

	notes, err := parseNotes(*notesFlag)
	if err != nil {
		return err
	}
	if *velocityFlag > 127 {
		return fmt.Errorf("velocity %d out of range 0-127", *velocityFlag)
	}

	law, err := pan.ParseLaw(*panLawFlag)
	if err != nil {
		return err
	}

	cfg := synth.DefaultConfig()
	cfg.SampleRate = float64(*rateFlag)
	cfg.Oscillators = *oscFlag
	cfg.PanLaw = law
	cfg.Logger = log.Named("synth")
	in := synth.New(cfg)
	info := in.Info()
	log.Info("%s", info)
	log.Debug("uid %x", info.UID())

	if *patchFlag != "" {
		patch, err := synth.LoadPatchFile(*patchFlag)
		if err != nil {
			return err
		}
		if err := in.ApplyPatch(patch); err != nil {
			log.Warn("patch %s: %v", *patchFlag, err)
		}
	}

	p := &player{in: in}
	p.noteOn(notes, uint8(*velocityFlag))

	profiler := debug.NewRenderProfiler(cfg.SampleRate)
	defer func() {
		log.Info("render: %s", profiler.Report())
		if n := in.Dropped(); n > 0 {
			log.Warn("%d MIDI events dropped", n)
		}
	}()

	if *renderFlag != "" {
		return render(log, in, notes, profiler)
	}
	return play(log, p, notes, profiler)
}

func render(log *debug.Logger, in *synth.Instrument, notes []uint8, profiler *debug.RenderProfiler) error {
	if *secondsFlag <= 0 {
		return errors.New("-render needs -seconds")
	}

	src := &profiledSource{
		src: withGain(&gatedSource{
			in:    in,
			notes: notes,
			gate:  int(gateFlag.Seconds() * float64(*rateFlag)),
		}),
		profiler: profiler,
	}
	if *analyzeFlag {
		src.capture = make([]float32, 0, 2*analysisFrames)
	}

	if err := audio.RenderWAVFile(*renderFlag, src, *rateFlag, *secondsFlag, *blockFlag); err != nil {
		return err
	}
	log.Info("wrote %.2fs to %s", *secondsFlag, *renderFlag)

	if *analyzeFlag {
		report(log, src.capture, float64(*rateFlag))
	}
	return nil
}

// analysisFrames is how much of a render -analyze looks at
const analysisFrames = 1 << 15

func report(log *debug.Logger, interleaved []float32, sampleRate float64) {
	if len(interleaved) == 0 {
		log.Warn("nothing rendered to analyze")
		return
	}
	for ch, name := range []string{"left", "right"} {
		s := analysis.AnalyzeChannel(interleaved, audio.Channels, ch, sampleRate, analysis.Hann)
		freq, mag := s.PeakFrequency()
		log.Info("%s: peak %.1f Hz at %.1f dB", name, freq, gain.LinearToDb(mag))
	}
	left, right := analysis.Deinterleave(interleaved)
	log.Info("balance %.2f, correlation %.2f", analysis.Balance(left, right), analysis.Correlation(left, right))
}

func play(log *debug.Logger, p *player, notes []uint8, profiler *debug.RenderProfiler) error {
	backend, err := audio.ParseBackend(*backendFlag)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if *secondsFlag > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, time.Duration(*secondsFlag*float64(time.Second)))
		defer stop()
	}

	if *midiFlag != "" {
		port := *midiFlag
		if port == "-" {
			port = ""
		}
		stop, err := midi.Listen(port, p.message)
		if err != nil {
			return err
		}
		defer stop()
		log.Info("listening for MIDI on %q", *midiFlag)
	}

	meter := &debug.PeakMeter{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return audio.Play(ctx, backend, withGain(p.in), audio.Options{
			SampleRate:  *rateFlag,
			BlockFrames: *blockFlag,
			Logger:      log.Named("audio"),
			Meter:       meter,
			Profiler:    profiler,
		})
	})

	if *gateFlag > 0 && len(notes) > 0 {
		g.Go(func() error {
			select {
			case <-time.After(*gateFlag):
				p.noteOff(notes)
			case <-ctx.Done():
			}
			return nil
		})
	}

	if *meterFlag {
		g.Go(func() error {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					fmt.Fprintf(os.Stderr, "\r%s %-7s", debug.MeterLine(meter.Take(), 0), p.in.EnvelopeStage())
				case <-ctx.Done():
					fmt.Fprintln(os.Stderr)
					return nil
				}
			}
		})
	}

	return g.Wait()
}

// profiledSource times every block a source renders and keeps a copy of the
// output until capture is full.
type profiledSource struct {
	src      audio.Source
	profiler *debug.RenderProfiler
	capture  []float32
}

func (s *profiledSource) RenderInterleaved(dst []float32) {
	done := s.profiler.Start(len(dst) / 2)
	s.src.RenderInterleaved(dst)
	done()

	if room := cap(s.capture) - len(s.capture); room > 0 {
		s.capture = append(s.capture, dst[:min(room, len(dst))]...)
	}
}

// gainSource scales everything a source renders
type gainSource struct {
	src   audio.Source
	scale float32
}

func withGain(src audio.Source) audio.Source {
	if *gainFlag == 0 {
		return src
	}
	return &gainSource{src: src, scale: float32(gain.DbToLinear(*gainFlag))}
}

func (s *gainSource) RenderInterleaved(dst []float32) {
	s.src.RenderInterleaved(dst)
	gain.ApplyBuffer(dst, s.scale)
}
