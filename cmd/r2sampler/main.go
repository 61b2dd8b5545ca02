// Command r2sampler rate-converts a WAV file using dsp/resample's
// multi-stage polyphase converter.
//
// Usage:
//
//	r2sampler -r 48000 input.wav output.wav
//	r2sampler -r 44100 -q 8 -b 256 input.wav output.wav
//	r2sampler -r 96000 -p quality.yaml input.wav output.wav
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/aikiriao/R2sampler/dsp/core"
	"github.com/aikiriao/R2sampler/dsp/resample"
	"github.com/aikiriao/R2sampler/internal/wavutil"
)

// profile optionally overrides the built-in quality/filter-order curve, so
// an operator can retune it without recompiling.
type profile struct {
	FilterType    string      `yaml:"filter_type"`
	QualityOrders map[int]int `yaml:"quality_orders"`
}

func defaultFilterOrder(quality int) int {
	return 11 + quality*20
}

func resolveFilterOrder(p *profile, quality int) int {
	if p != nil {
		if order, ok := p.QualityOrders[quality]; ok {
			return order
		}
	}
	return defaultFilterOrder(quality)
}

func resolveFilterType(p *profile) (resample.FilterType, error) {
	name := "hann"
	if p != nil && p.FilterType != "" {
		name = p.FilterType
	}
	switch name {
	case "hann":
		return resample.FilterTypeHann, nil
	case "blackman":
		return resample.FilterTypeBlackman, nil
	case "nuttall":
		return resample.FilterTypeNuttall, nil
	case "blackman-nuttall":
		return resample.FilterTypeBlackmanNuttall, nil
	case "none":
		return resample.FilterTypeNone, nil
	default:
		return 0, fmt.Errorf("unknown filter type %q", name)
	}
}

func loadProfile(path string) (*profile, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &p, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "r2sampler: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("r2sampler", pflag.ContinueOnError)
	outputRate := flags.IntP("output-rate", "r", 0, "output sampling rate (required)")
	bufferSize := flags.IntP("buffer", "b", 128, "input block size in samples per Process call")
	quality := flags.IntP("quality", "q", 5, "filter quality, 0-9 (higher is a longer, sharper filter)")
	profilePath := flags.StringP("profile", "p", "", "optional YAML file overriding the filter type and quality/order table")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: r2sampler -r RATE [flags] INPUT_FILE OUTPUT_FILE\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *outputRate <= 0 {
		return fmt.Errorf("output-rate must be specified and positive")
	}
	if *quality < 0 || *quality > 9 {
		return fmt.Errorf("quality must be in 0..9")
	}

	rest := flags.Args()
	if len(rest) != 2 {
		flags.Usage()
		return fmt.Errorf("expected INPUT_FILE and OUTPUT_FILE arguments")
	}
	inputFile, outputFile := rest[0], rest[1]

	prof, err := loadProfile(*profilePath)
	if err != nil {
		return err
	}
	filterType, err := resolveFilterType(prof)
	if err != nil {
		return err
	}
	filterOrder := resolveFilterOrder(prof, *quality)

	return convertFile(inputFile, outputFile, *outputRate, *bufferSize, filterType, filterOrder)
}

func convertFile(inputFile, outputFile string, outputRate, bufferSize int, filterType resample.FilterType, filterOrder int) error {
	in, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	decoder := wav.NewDecoder(in)
	if !decoder.IsValidFile() {
		return fmt.Errorf("%s is not a valid WAV file", inputFile)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("reading PCM data: %w", err)
	}

	inputRate := int(decoder.SampleRate)
	numChans := int(decoder.NumChans)
	bitDepth := int(decoder.BitDepth)
	numFrames := len(buf.Data) / numChans

	channels := make([][]int, numChans)
	for ch := range channels {
		channels[ch] = make([]int, numFrames)
	}
	wavutil.Deinterleave(channels, buf.Data, numChans)

	outFrames := resample.MaxNumOutputSamples(numFrames, inputRate, outputRate)
	outChannels := make([][]int, numChans)

	procCfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(outputRate)),
		core.WithBlockSize(bufferSize),
	)

	for ch := 0; ch < numChans; ch++ {
		out, n, err := convertChannel(channels[ch], inputRate, int(procCfg.SampleRate), procCfg.BlockSize, filterType, filterOrder, bitDepth, outFrames)
		if err != nil {
			return fmt.Errorf("converting channel %d: %w", ch, err)
		}
		outChannels[ch] = out[:n]
	}

	minLen := len(outChannels[0])
	for _, c := range outChannels {
		if len(c) < minLen {
			minLen = len(c)
		}
	}
	for ch := range outChannels {
		outChannels[ch] = outChannels[ch][:minLen]
	}

	interleaved := make([]int, minLen*numChans)
	wavutil.Interleave(interleaved, outChannels)

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	encoder := wav.NewEncoder(out, outputRate, bitDepth, numChans, int(decoder.WavAudioFormat))
	outBuf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: outputRate, NumChannels: numChans},
		Data:           interleaved,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(outBuf); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return encoder.Close()
}

func convertChannel(pcm []int, inputRate, outputRate, bufferSize int, filterType resample.FilterType, filterOrder int, bitDepth int, outBound int) ([]int, int, error) {
	converter, err := resample.NewMultiStage(resample.MultiStageConfig{
		MaxNumInputSamples: bufferSize,
		InputRate:          inputRate,
		OutputRate:         outputRate,
		FilterType:         filterType,
		FilterOrder:        filterOrder,
	})
	if err != nil {
		return nil, 0, err
	}
	converter.Start()

	input := make([]float64, len(pcm))
	wavutil.ToFloat64(input, pcm, bitDepth)

	outFloat := make([]float64, resample.MaxNumOutputSamples(bufferSize, inputRate, outputRate))
	outPCM := make([]int, 0, outBound)

	processBuf := make([]float64, bufferSize)
	total := 0
	for progress := 0; progress < len(input); {
		n := bufferSize
		if remaining := len(input) - progress; remaining < n {
			n = remaining
		}
		copy(processBuf[:n], input[progress:progress+n])

		numOut, err := converter.Process(processBuf[:n], outFloat)
		if errors.Is(err, resample.ErrInsufficientBuffer) {
			outFloat = make([]float64, len(outFloat)*2)
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		chunk := make([]int, numOut)
		wavutil.FromFloat64(chunk, outFloat[:numOut], bitDepth)
		outPCM = append(outPCM, chunk...)
		total += numOut
		progress += n
	}

	return outPCM, total, nil
}
