package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/justyntemme/rnbossp/pkg/framework/bus"
	"github.com/justyntemme/rnbossp/pkg/framework/process"
	"github.com/justyntemme/rnbossp/pkg/plugin"
	"github.com/justyntemme/rnbossp/pkg/wrapper"
)

// paramSettings collects repeated -set key=value flags.
type paramSettings [][2]string

func (s *paramSettings) String() string {
	parts := make([]string, len(*s))
	for i, kv := range *s {
		parts[i] = kv[0] + "=" + kv[1]
	}
	return strings.Join(parts, ",")
}

func (s *paramSettings) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("want key=value, got %q", v)
	}
	*s = append(*s, [2]string{strings.TrimSpace(key), strings.TrimSpace(value)})
	return nil
}

func runRenderCommand(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "input WAV file (default: an impulse)")
	out := fs.String("out", "", "output WAV file (default: ID.wav)")
	duration := fs.Duration("duration", 2*time.Second, "length rendered when no input is given")
	sampleRate := fs.Int("sample-rate", 0, "sample rate when no input is given (default from config)")
	blockSize := fs.Int("block", 0, "host block size (default from config)")
	bits := fs.Int("bits", 16, "output bit depth: 16, 24 or 32")
	var settings paramSettings
	fs.Var(&settings, "set", "parameter value as key=value in display units, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return withExitCode(errors.New("usage: rnbossp render [flags] ID"), 2)
	}
	id := fs.Arg(0)
	if *out == "" {
		*out = id + ".wav"
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	if *sampleRate <= 0 {
		*sampleRate = int(s.cfg.Render.SampleRate)
	}
	if *blockSize <= 0 {
		*blockSize = s.cfg.Render.BlockSize
	}

	manifest, patch, err := openModule(s.project, id)
	if err != nil {
		return err
	}
	proc, err := wrapper.NewProcessor(manifest.Name, patch)
	if err != nil {
		return err
	}
	c := plugin.NewComponent(manifest.Info(), proc)

	changes, err := parameterChanges(c, proc, settings)
	if err != nil {
		return err
	}

	nIn := proc.GetBuses().ChannelCount(bus.DirectionInput)
	var inputs [][]float32
	frames := 0
	if *in != "" {
		var rate int
		if inputs, rate, err = readWAV(*in); err != nil {
			return err
		}
		*sampleRate = rate
		frames = len(inputs[0])
		inputs = inputs[:min(len(inputs), nIn)]
	} else {
		frames = int(duration.Seconds() * float64(*sampleRate))
		inputs = make([][]float32, nIn)
		for ch := range inputs {
			inputs[ch] = make([]float32, frames)
			if frames > 0 {
				inputs[ch][0] = 1
			}
		}
	}

	host, err := plugin.NewOfflineHost(c, float64(*sampleRate), *blockSize)
	if err != nil {
		return err
	}
	defer host.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	outputs, err := host.Run(ctx, inputs, frames, changes)
	if err != nil {
		return err
	}
	if len(outputs) == 0 {
		return fmt.Errorf("%s has no outputs", id)
	}

	for ch, buf := range outputs {
		s.log.LogBufferStats(buf, fmt.Sprintf("out %d", ch+1))
	}
	if s.log.IsDebug() {
		s.log.Debug("block timings:\n%s", host.Profiler().Report())
	}

	if err := writeWAV(*out, outputs, *sampleRate, *bits); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Rendered %d frames (%.3fs) to %s, DSP load %.1f%%\n",
		frames, float64(frames)/float64(*sampleRate), *out, host.Load())
	return nil
}

// parameterChanges converts -set flags into changes at the first frame.
func parameterChanges(c *plugin.Component, proc *wrapper.Processor, settings paramSettings) ([]process.ParameterChange, error) {
	changes := make([]process.ParameterChange, 0, len(settings))
	for _, kv := range settings {
		p := proc.GetParameters().GetByKey(kv[0])
		if p == nil {
			return nil, fmt.Errorf("%w: %s", plugin.ErrUnknownParameter, kv[0])
		}
		v, err := c.GetParamValueByString(p.ID, kv[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kv[0], err)
		}
		changes = append(changes, process.ParameterChange{ParamID: p.ID, Value: v})
	}
	return changes, nil
}
