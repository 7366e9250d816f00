// Command utility-render runs a WAV file through the stereo utility.
//
// Every parameter is a flag named by its key and takes the same text the
// editor displays:
//
//	utility-render in.wav out.wav
//	utility-render -gain "-6 dB" -pan 20L in.wav out.wav
//	utility-render -stereoWidth 150% -isBassMono on -bassMonoFrequency 150 in.wav out.wav
//	utility-render -stereoMode Mid/Side -stereoMidSide 40S in.wav out.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-utility/dsp/utility"
)

const (
	defaultBlockSize = 512
	minRequiredArgs  = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	params := registerParamFlags(flag.CommandLine)
	blockSize := flag.Int("block", defaultBlockSize, "Processing block size in samples")
	ramp := flag.String("ramp", "block", "Gain ramp: block or time")
	smoothing := flag.Float64("smoothing", 0.05, "Width and mid/side smoothing time in seconds")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()

		return fmt.Errorf("insufficient arguments")
	}

	if *blockSize <= 0 {
		return fmt.Errorf("block size must be > 0: %d", *blockSize)
	}

	rampMode, err := parseRampMode(*ramp)
	if err != nil {
		return err
	}

	p, err := utility.NewProcessor(utility.WithRampMode(rampMode), utility.WithSmoothing(*smoothing))
	if err != nil {
		return err
	}

	if err := applyParams(p.Params(), params); err != nil {
		return err
	}

	inputPath, outputPath := args[0], args[1]

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Block size: %d, gain ramp: %s", *blockSize, rampMode)

		for _, line := range describeParams(p.Params()) {
			log.Print(line)
		}
	}

	start := time.Now()

	stats, err := renderWAV(inputPath, outputPath, p, *blockSize, *verbose)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Printf("Rendered %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit, %d frames\n",
		stats.sampleRate, stats.channels, stats.bitDepth, stats.frames)

	for _, line := range stats.report() {
		fmt.Println("  " + line)
	}

	if stats.frames > 0 {
		fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
			elapsed.Seconds(),
			float64(stats.frames)/float64(stats.sampleRate)/elapsed.Seconds())
	}

	return nil
}
