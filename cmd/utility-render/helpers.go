package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-utility/dsp/buffer"
	"github.com/cwbudde/algo-utility/dsp/effects/level"
	"github.com/cwbudde/algo-utility/dsp/meter"
	"github.com/cwbudde/algo-utility/dsp/utility"
	"github.com/cwbudde/algo-utility/dsp/utility/param"
)

const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM     = 1
	progressInterval = 10
	percentScale     = 100
)

// registerParamFlags adds one string flag per parameter, defaulting to the
// formatted default value.
func registerParamFlags(fs *flag.FlagSet) map[string]*string {
	values := make(map[string]*string, param.Count)

	for _, d := range param.Definitions() {
		usage := d.Name
		if d.Unit != "" {
			usage += " (" + d.Unit + ")"
		}

		values[d.Key] = fs.String(d.Key, d.ID.Format(d.Default), usage)
	}

	return values
}

// applyParams parses every flag value into store.
func applyParams(store *param.Store, values map[string]*string) error {
	for _, d := range param.Definitions() {
		text, ok := values[d.Key]
		if !ok || text == nil {
			continue
		}

		v, err := d.ID.Parse(*text)
		if err != nil {
			return fmt.Errorf("invalid -%s: %w", d.Key, err)
		}

		store.Store(d.ID, v)
	}

	return nil
}

// describeParams formats every parameter as "Name: value".
func describeParams(store *param.Store) []string {
	defs := param.Definitions()
	lines := make([]string, 0, len(defs))

	for _, d := range defs {
		lines = append(lines, fmt.Sprintf("%s: %s", d.Name, d.ID.Format(store.Load(d.ID))))
	}

	return lines
}

func parseRampMode(s string) (level.RampMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return level.RampBlock, nil
	case "time":
		return level.RampTime, nil
	default:
		return 0, fmt.Errorf("unknown gain ramp %q (want block or time)", s)
	}
}

// maxValue returns the full-scale integer value for the given bit depth.
func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// intsToFloats converts PCM integers to [-1, 1] floats in dst.
func intsToFloats(dst []float64, src []int, maxVal float64) []float64 {
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = float64(v)
	}

	f64.Scale(dst, dst, 1/maxVal)

	return dst
}

// floatsToInts converts floats to PCM integers in dst, clipping at full
// scale. It returns the number of clipped samples.
func floatsToInts(dst []int, src []float64, maxVal float64) ([]int, int) {
	dst = dst[:len(src)]
	clipped := 0

	for i, v := range src {
		switch {
		case v > 1:
			v = 1
			clipped++
		case v < -1:
			v = -1
			clipped++
		}

		dst[i] = int(v * maxVal)
	}

	return dst, clipped
}

// wavInput holds an open, validated WAV file.
type wavInput struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	frames   int64
	format   *audio.Format
}

func openWAVInput(path string, verbose bool) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInput{
		file:     f,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		frames:   int64(duration.Seconds() * float64(format.SampleRate)),
		format:   format,
	}, nil
}

func (w *wavInput) Close() error {
	return w.file.Close()
}

// channelLevels tracks input and output levels per channel.
type channelLevels struct {
	in, out     []*meter.Meter
	inSq, outSq []float64
	frames      int64
}

func newChannelLevels(channels int, sampleRate float64) (*channelLevels, error) {
	l := &channelLevels{
		in:    make([]*meter.Meter, channels),
		out:   make([]*meter.Meter, channels),
		inSq:  make([]float64, channels),
		outSq: make([]float64, channels),
	}

	for ch := range channels {
		var err error

		if l.in[ch], err = meter.New(sampleRate); err != nil {
			return nil, err
		}

		if l.out[ch], err = meter.New(sampleRate); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func track(m *meter.Meter, sumSq *float64, block []float64) {
	m.Process(block)
	*sumSq += meter.MeanSquare(block) * float64(len(block))
}

func (l *channelLevels) levels(meters []*meter.Meter, sumSq []float64) []meter.Levels {
	out := make([]meter.Levels, len(meters))

	for ch, m := range meters {
		out[ch].Peak = m.MaxPeak()
		if l.frames > 0 {
			out[ch].RMS = math.Sqrt(sumSq[ch] / float64(l.frames))
		}
	}

	return out
}

type renderStats struct {
	sampleRate int
	channels   int
	bitDepth   int
	frames     int64
	clipped    int
	in, out    []meter.Levels
}

func (s *renderStats) report() []string {
	lines := make([]string, 0, len(s.in)+1)

	for ch := range s.in {
		lines = append(lines, fmt.Sprintf("ch%d  in: peak %6.1f dB, rms %6.1f dB  out: peak %6.1f dB, rms %6.1f dB",
			ch+1, s.in[ch].PeakDB(), s.in[ch].RMSDB(), s.out[ch].PeakDB(), s.out[ch].RMSDB()))
	}

	if s.clipped > 0 {
		lines = append(lines, fmt.Sprintf("clipped samples: %d", s.clipped))
	}

	return lines
}

// renderWAV streams inputPath through p in blocks of blockSize frames and
// writes the result to outputPath with the input's format.
func renderWAV(inputPath, outputPath string, p *utility.Processor, blockSize int, verbose bool) (stats *renderStats, err error) {
	input, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	if err := p.Prepare(float64(input.rate), blockSize, input.channels); err != nil {
		return nil, err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	encoder := wav.NewEncoder(outFile, input.rate, input.bitDepth, input.channels, wavFormatPCM)

	defer func() {
		if closeErr := encoder.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to finalize WAV: %w", closeErr)
		}

		if closeErr := outFile.Close(); err == nil {
			err = closeErr
		}
	}()

	levels, err := newChannelLevels(input.channels, float64(input.rate))
	if err != nil {
		return nil, err
	}

	maxVal := maxValue(input.bitDepth)
	inBuf := &audio.IntBuffer{
		Data:           make([]int, blockSize*input.channels),
		Format:         input.format,
		SourceBitDepth: input.bitDepth,
	}
	outBuf := &audio.IntBuffer{
		Data:           make([]int, blockSize*input.channels),
		Format:         input.format,
		SourceBitDepth: input.bitDepth,
	}
	interleaved := make([]float64, blockSize*input.channels)
	block := buffer.New(input.channels, blockSize)

	stats = &renderStats{
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
	}
	lastProgress := 0

	for {
		inBuf.Data = inBuf.Data[:cap(inBuf.Data)]

		n, err := input.decoder.PCMBuffer(inBuf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}

		frames := n / input.channels
		if frames == 0 {
			break
		}

		samples := intsToFloats(interleaved, inBuf.Data[:frames*input.channels], maxVal)
		block.Resize(frames)
		block.Deinterleave(samples)

		for ch, data := range block.Channels() {
			track(levels.in[ch], &levels.inSq[ch], data)
		}

		p.Process(block.Channels())

		for ch, data := range block.Channels() {
			track(levels.out[ch], &levels.outSq[ch], data)
		}

		samples = block.Interleave(interleaved)

		var clipped int

		outBuf.Data, clipped = floatsToInts(outBuf.Data[:cap(outBuf.Data)], samples, maxVal)
		stats.clipped += clipped

		if err := encoder.Write(outBuf); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		stats.frames += int64(frames)
		levels.frames = stats.frames

		if verbose && input.frames > 0 {
			progress := int(float64(stats.frames) / float64(input.frames) * percentScale)
			if progress >= lastProgress+progressInterval {
				log.Printf("Progress: %d%%", progress)
				lastProgress = progress
			}
		}
	}

	stats.in = levels.levels(levels.in, levels.inSq)
	stats.out = levels.levels(levels.out, levels.outSq)

	return stats, nil
}
