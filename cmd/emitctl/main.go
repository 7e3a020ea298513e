// Command emitctl is a tiny demonstration binary: it wires a
// core.Runtime from environment variables and CLI flags, emits one
// sample log event and one sample span through whichever sinks are
// enabled, flushes, and exits. It exists to show the whole module
// assembled end to end, the way the teacher's own example programs
// under ddtrace's doc comments show a minimal tracer.Start/Stop usage.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"go.emit.dev/emit/core"
	"go.emit.dev/emit/ctxt"
	"go.emit.dev/emit/emitter/file"
	"go.emit.dev/emit/emitter/otlp"
	"go.emit.dev/emit/internal/clock"
	"go.emit.dev/emit/internal/config"
	"go.emit.dev/emit/internal/env"
	"go.emit.dev/emit/internal/log"
	"go.emit.dev/emit/internal/metrics"
	"go.emit.dev/emit/internal/rng"
	"go.emit.dev/emit/trace"
)

func main() {
	cfg := config.FromEnv(env.OS)

	fs := pflag.NewFlagSet("emitctl", pflag.ExitOnError)
	config.RegisterFlags(fs, &cfg)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	counters := metrics.New("emitctl")

	var sink core.Emitter = core.DiscardEmitter{}
	var closers []func()
	var runners []func()

	if cfg.FileEnabled {
		fileCfg := cfg.File
		fileCfg.Clock = clock.Wall{}
		fileCfg.Rng = rng.Crypto{}
		emitter, receiver := file.New(fileCfg, 0, counters)
		sink = combine(sink, emitter)
		closers = append(closers, emitter.Close)
		runners = append(runners, func() { go receiver.Run() })
	}

	if cfg.OTLP.Traces.Enabled || cfg.OTLP.Metrics.Enabled || cfg.OTLP.Logs.Enabled {
		otlpCfg := cfg.OTLP
		otlpCfg.Clock = clock.Wall{}
		otlpCfg.Rng = rng.Crypto{}
		emitter, receivers := otlp.New(otlpCfg, counters)
		sink = combine(sink, emitter)
		closers = append(closers, emitter.Close)
		runners = append(runners, receivers.Run)
	}

	if len(runners) == 0 {
		log.Warn("no emitter enabled (set EMIT_FILE_DIR or OTEL_EXPORTER_OTLP_*_ENDPOINT); events will be discarded")
	}
	for _, run := range runners {
		run()
	}

	rt := core.Runtime{
		Emitter: sink,
		Ctxt:    ctxt.New(),
		Clock:   clock.Wall{},
		Rng:     rng.Crypto{},
	}

	rt.Emit(core.NewPath("emitctl"), core.ParseTemplate("emitctl starting up, service={service}"), core.SliceProps{
		{Key: core.NewStaticStr("service"), Val: core.OfStringLiteral(cfg.ServiceName)},
	}, core.NoExtent())

	span := trace.StartSpan(rt, rng.Crypto{}, core.NewPath("emitctl::demo"), core.ParseTemplate("demo-operation"), core.Empty{})
	time.Sleep(time.Millisecond)
	span.Finish(rt.Clock.Now(), core.Empty{})

	if !rt.BlockingFlush(5 * time.Second) {
		fmt.Fprintln(os.Stderr, "emitctl: flush timed out, some events may not have been delivered")
	}
	for _, closeFn := range closers {
		closeFn()
	}
}

func combine(a, b core.Emitter) core.Emitter {
	if _, ok := a.(core.DiscardEmitter); ok {
		return b
	}
	return core.AndTo{A: a, B: b}
}
