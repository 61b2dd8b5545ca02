package resample

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/aikiriao/R2sampler/dsp/core"
	"github.com/aikiriao/R2sampler/dsp/numeric"
	"github.com/aikiriao/R2sampler/dsp/ringbuffer"
)

const (
	stageAlignment        = 16
	stageHandleSizeEstimate = 96
)

// StageConfig describes a single upsample/filter/downsample pass.
type StageConfig struct {
	// MaxNumInputSamples bounds every Process call's input length.
	MaxNumInputSamples int
	// InputRate and OutputRate need not be coprime; NewSingleStage reduces
	// them by their GCD.
	InputRate  int
	OutputRate int
	// FilterType selects the anti-aliasing filter; FilterTypeNone requires
	// FilterOrder == 1.
	FilterType FilterType
	// FilterOrder is the FIR tap count; must be odd.
	FilterOrder int
}

func (cfg StageConfig) reduced() (up, down int, err error) {
	if cfg.MaxNumInputSamples <= 0 || cfg.InputRate <= 0 || cfg.OutputRate <= 0 {
		return 0, 0, ErrInvalidArgument
	}
	if cfg.FilterOrder <= 0 || cfg.FilterOrder%2 == 0 {
		return 0, 0, ErrInvalidArgument
	}
	if cfg.FilterType == FilterTypeNone && cfg.FilterOrder != 1 {
		return 0, 0, ErrInvalidArgument
	}
	g := numeric.GCD(cfg.InputRate, cfg.OutputRate)
	up = cfg.OutputRate / g
	down = cfg.InputRate / g
	if up*cfg.MaxNumInputSamples < down {
		return 0, 0, ErrInvalidArgument
	}
	return up, down, nil
}

// CalculateWorkSize reports the byte size a SingleStageConverter built from
// cfg would need. It exists so callers can pre-flight a configuration (and,
// historically, size a shared work region); this translation always
// allocates its own slices at Create time regardless of the value returned
// here, but Create still rejects a workSize smaller than this.
func CalculateWorkSize(cfg StageConfig) (int, error) {
	up, down, err := cfg.reduced()
	if err != nil {
		return 0, err
	}

	bufferNumSamples := cfg.MaxNumInputSamples*up + (down - 1) + cfg.FilterOrder
	maxRequired := max(down, cfg.FilterOrder)

	size := roundUp16(stageHandleSizeEstimate)
	size += roundUp16((bufferNumSamples+1)*8 + maxRequired*8)
	size += roundUp16(cfg.FilterOrder * 8)
	size += roundUp16(cfg.MaxNumInputSamples * up * 8)
	return size, nil
}

func roundUp16(n int) int {
	return (n + stageAlignment - 1) &^ (stageAlignment - 1)
}

// SingleStageConverter performs one L/M rational resampling pass with a
// streaming polyphase-skip convolution. It is not safe for concurrent use.
type SingleStageConverter struct {
	upRate, downRate   int
	maxNumInputSamples int
	filterType         FilterType
	filterOrder        int
	filterCoef         []float64

	ring *ringbuffer.RingBuffer

	interpBuffer []float64 // scratch: zero-inserted input, len = upRate*maxNumInputSamples
	putScratch   []byte    // scratch: encoded interpBuffer bytes
	window       []float64 // scratch: decoded peek window, len = filterOrder
	windowBytes  []byte    // scratch: raw peek bytes, len = filterOrder*8

	interpOffset int

	// zero-skip path (upRate > 1): precomputed per-offset coefficient
	// selection and a reusable gather buffer.
	coefByOffset  [][]float64
	selectScratch []float64

	// symmetric-FIR path (upRate == 1): folded coefficients and a reusable
	// pair-sum buffer.
	halfOrder   int
	foldedCoef  []float64
	centerCoef  float64
	pairScratch []float64
}

// NewSingleStage validates cfg and the supplied work-region size, then
// allocates a converter. workSize must be >= CalculateWorkSize(cfg); pass the
// value CalculateWorkSize returns when there is no reason to pre-check a
// caller-owned budget.
func NewSingleStage(cfg StageConfig, workSize int) (*SingleStageConverter, error) {
	required, err := CalculateWorkSize(cfg)
	if err != nil {
		return nil, err
	}
	if workSize < required {
		return nil, ErrInvalidArgument
	}

	up, down, err := cfg.reduced()
	if err != nil {
		return nil, err
	}

	bufferNumSamples := cfg.MaxNumInputSamples*up + (down - 1) + cfg.FilterOrder
	maxRequired := max(down, cfg.FilterOrder)
	rb, err := ringbuffer.New(ringbuffer.Config{
		MaxSize:         bufferNumSamples * 8,
		MaxRequiredSize: maxRequired * 8,
	})
	if err != nil {
		return nil, err
	}

	filterCoef, err := buildFilterCoef(cfg.FilterType, cfg.FilterOrder, up, down)
	if err != nil {
		return nil, err
	}

	s := &SingleStageConverter{
		upRate:             up,
		downRate:           down,
		maxNumInputSamples: cfg.MaxNumInputSamples,
		filterType:         cfg.FilterType,
		filterOrder:        cfg.FilterOrder,
		filterCoef:         filterCoef,
		ring:               rb,
		interpBuffer:       make([]float64, cfg.MaxNumInputSamples*up),
		putScratch:         make([]byte, cfg.MaxNumInputSamples*up*8),
		window:             make([]float64, cfg.FilterOrder),
		windowBytes:        make([]byte, cfg.FilterOrder*8),
	}

	if up > 1 {
		s.coefByOffset = make([][]float64, up)
		maxNonzero := 0
		for off := 0; off < up; off++ {
			var sel []float64
			for i := off; i < cfg.FilterOrder; i += up {
				sel = append(sel, filterCoef[i])
			}
			s.coefByOffset[off] = sel
			if len(sel) > maxNonzero {
				maxNonzero = len(sel)
			}
		}
		s.selectScratch = make([]float64, maxNonzero)
	} else {
		s.halfOrder = cfg.FilterOrder / 2
		s.foldedCoef = append([]float64(nil), filterCoef[:s.halfOrder]...)
		s.centerCoef = filterCoef[s.halfOrder]
		s.pairScratch = make([]float64, s.halfOrder)
	}

	s.Start()
	return s, nil
}

func buildFilterCoef(filterType FilterType, order, up, down int) ([]float64, error) {
	if filterType == FilterTypeNone {
		return []float64{1.0}, nil
	}
	cutoff := 0.5 / float64(max(up, down))
	coef, err := designLowpass(filterType, order, cutoff)
	if err != nil {
		return nil, err
	}
	vecmath.ScaleBlock(coef, coef, float64(up))
	return coef, nil
}

// Start resets the converter's internal delay state, priming it with
// filterOrder-1 zero samples so group delay is accounted for from the first
// real output sample onward.
func (s *SingleStageConverter) Start() {
	s.ring.Clear()
	core.Zero(s.interpBuffer)

	remaining := s.filterOrder - 1
	for remaining > 0 {
		n := min(len(s.interpBuffer), remaining)
		encodeFloats(s.putScratch[:n*8], s.interpBuffer[:n])
		if err := s.ring.Put(s.putScratch[:n*8]); err != nil {
			panic(fmt.Sprintf("resample: priming put failed: %v", err))
		}
		remaining -= n
	}

	s.interpOffset = (s.filterOrder - 1) % s.upRate
}

// UpDownRate returns the converter's reduced up/down conversion factors.
func (s *SingleStageConverter) UpDownRate() (up, down int) {
	return s.upRate, s.downRate
}

// MaxNumInputSamples returns the configured per-call input bound.
func (s *SingleStageConverter) MaxNumInputSamples() int {
	return s.maxNumInputSamples
}

// Coefficients returns a copy of the designed anti-aliasing filter's taps,
// at the upsampled (post-interpolation) rate. For FilterTypeNone this is the
// single-tap identity filter [1].
func (s *SingleStageConverter) Coefficients() []float64 {
	c := make([]float64, len(s.filterCoef))
	copy(c, s.filterCoef)
	return c
}

func (s *SingleStageConverter) numBufferedSamples() int {
	return s.ring.GetRemainSize()/8 - (s.filterOrder - 1)
}

// NumOutputSamples reports how many samples Process would emit for the next
// numInputSamples input samples, without mutating state.
func (s *SingleStageConverter) NumOutputSamples(numInputSamples int) int {
	n := s.numBufferedSamples() + s.upRate*numInputSamples
	return n / s.downRate
}

// Process converts input into output, returning the number of samples
// written. No allocation occurs on this path: all scratch buffers were
// sized at construction time.
func (s *SingleStageConverter) Process(input, output []float64) (int, error) {
	if len(input) > s.maxNumInputSamples {
		return 0, ErrTooManyNumInputs
	}

	numOut := s.NumOutputSamples(len(input))
	if numOut > len(output) {
		return 0, ErrInsufficientBuffer
	}

	n := len(input)
	core.Zero(s.interpBuffer[:n*s.upRate])
	for i, v := range input {
		s.interpBuffer[i*s.upRate] = v
	}
	encodeFloats(s.putScratch[:n*s.upRate*8], s.interpBuffer[:n*s.upRate])
	if err := s.ring.Put(s.putScratch[:n*s.upRate*8]); err != nil {
		panic(fmt.Sprintf("resample: put failed: %v", err))
	}

	if s.upRate > 1 {
		s.processZeroSkip(numOut, output)
	} else {
		s.processSymmetric(numOut, output)
	}

	return numOut, nil
}

func (s *SingleStageConverter) peekWindow() {
	raw, err := s.ring.Peek(s.filterOrder * 8)
	if err != nil {
		panic(fmt.Sprintf("resample: peek failed: %v", err))
	}
	copy(s.windowBytes, raw)
	decodeFloats(s.window, s.windowBytes)
}

func (s *SingleStageConverter) advance() {
	if _, err := s.ring.Get(s.downRate * 8); err != nil {
		panic(fmt.Sprintf("resample: get failed: %v", err))
	}
}

func (s *SingleStageConverter) processZeroSkip(numOut int, output []float64) {
	interpDelta := s.downRate * (s.upRate - 1)
	for smpl := 0; smpl < numOut; smpl++ {
		s.peekWindow()

		sel := s.coefByOffset[s.interpOffset]
		k := 0
		for i := s.interpOffset; i < s.filterOrder; i += s.upRate {
			s.selectScratch[k] = s.window[i]
			k++
		}
		output[smpl] = core.FlushDenormals(vecmath.DotProduct(sel, s.selectScratch[:k]))

		s.advance()
		s.interpOffset = (s.interpOffset + interpDelta) % s.upRate
	}
}

func (s *SingleStageConverter) processSymmetric(numOut int, output []float64) {
	for smpl := 0; smpl < numOut; smpl++ {
		s.peekWindow()

		for i := 0; i < s.halfOrder; i++ {
			s.pairScratch[i] = s.window[i] + s.window[s.filterOrder-1-i]
		}
		output[smpl] = core.FlushDenormals(s.window[s.halfOrder]*s.centerCoef + vecmath.DotProduct(s.foldedCoef, s.pairScratch))

		s.advance()
	}
}

func encodeFloats(dst []byte, src []float64) {
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[i*8:], math.Float64bits(v))
	}
}

func decodeFloats(dst []float64, src []byte) {
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
	}
}
