package resample

import (
	"github.com/aikiriao/R2sampler/dsp/core"
	"github.com/aikiriao/R2sampler/dsp/numeric"
)

// MultiStageRateConverterMaxNumStages bounds how many stages a cascade may
// have; the planner rejects any factorization that would need more.
const MultiStageRateConverterMaxNumStages = 10

// MultiStageConfig describes a full rate conversion, to be decomposed into a
// cascade of SingleStageConverter passes by the planner.
type MultiStageConfig struct {
	// MaxNumInputSamples bounds every Process call's input length.
	MaxNumInputSamples int
	InputRate          int
	OutputRate         int
	FilterType         FilterType
	FilterOrder        int
	// MaxNumStages caps the cascade length; 0 selects
	// MultiStageRateConverterMaxNumStages.
	MaxNumStages int
}

// MultiStageConverter chains a sequence of SingleStageConverters to perform
// one overall L/M rational conversion with narrower per-stage filters than a
// single pass would need.
type MultiStageConverter struct {
	upRate, downRate       int
	stages                 []*SingleStageConverter
	processBuffer          [2][]float64
	maxNumBufferSamples    int
	maxNumInputSamples     int
}

// MaxNumOutputSamples reports the output buffer size a caller must provide
// to Process for up to ni input samples at the given conversion rates.
func MaxNumOutputSamples(ni, inRate, outRate int) int {
	return (ni*outRate + outRate + inRate - 1) / inRate
}

// NewMultiStage validates cfg, plans a stage cascade, and allocates every
// stage and pipeline buffer.
func NewMultiStage(cfg MultiStageConfig) (*MultiStageConverter, error) {
	if cfg.MaxNumInputSamples <= 0 || cfg.InputRate <= 0 || cfg.OutputRate <= 0 {
		return nil, ErrInvalidArgument
	}
	maxStages := cfg.MaxNumStages
	if maxStages <= 0 {
		maxStages = MultiStageRateConverterMaxNumStages
	}

	g := numeric.GCD(cfg.InputRate, cfg.OutputRate)
	upTotal := cfg.OutputRate / g
	downTotal := cfg.InputRate / g

	plan, err := planStages(upTotal, downTotal, maxStages)
	if err != nil {
		return nil, err
	}

	m := &MultiStageConverter{
		upRate:             upTotal,
		downRate:           downTotal,
		maxNumInputSamples: cfg.MaxNumInputSamples,
	}

	n := cfg.MaxNumInputSamples
	for _, sp := range plan {
		stageCfg := StageConfig{
			MaxNumInputSamples: n,
			InputRate:          sp.Down,
			OutputRate:         sp.Up,
			FilterType:         cfg.FilterType,
			FilterOrder:        cfg.FilterOrder,
		}
		if sp.Up == 1 && sp.Down == 1 {
			stageCfg.FilterType = FilterTypeNone
			stageCfg.FilterOrder = 1
		}
		workSize, err := CalculateWorkSize(stageCfg)
		if err != nil {
			return nil, err
		}
		stage, err := NewSingleStage(stageCfg, workSize)
		if err != nil {
			return nil, err
		}
		m.stages = append(m.stages, stage)

		n = MaxNumOutputSamples(n, sp.Down, sp.Up)
		if n > m.maxNumBufferSamples {
			m.maxNumBufferSamples = n
		}
	}
	if cfg.MaxNumInputSamples > m.maxNumBufferSamples {
		m.maxNumBufferSamples = cfg.MaxNumInputSamples
	}

	m.processBuffer[0] = core.EnsureLen(nil, m.maxNumBufferSamples)
	m.processBuffer[1] = core.EnsureLen(nil, m.maxNumBufferSamples)

	return m, nil
}

// UpDownRate returns the converter's overall, reduced conversion factors.
func (m *MultiStageConverter) UpDownRate() (up, down int) {
	return m.upRate, m.downRate
}

// NumStages reports how many single-stage passes the planner chose.
func (m *MultiStageConverter) NumStages() int {
	return len(m.stages)
}

// Start resets every stage's internal delay state.
func (m *MultiStageConverter) Start() {
	for _, s := range m.stages {
		s.Start()
	}
}

// Process runs input through every stage in order, returning the number of
// samples written to output. If any stage would yield zero samples, Process
// short-circuits and returns 0 with no error: there is simply nothing ready
// to emit yet.
func (m *MultiStageConverter) Process(input, output []float64) (int, error) {
	if len(input) > m.maxNumInputSamples {
		return 0, ErrTooManyNumInputs
	}

	pin, pout := 0, 1
	core.CopyInto(m.processBuffer[pin], input)
	n := len(input)

	for _, s := range m.stages {
		out, err := s.Process(m.processBuffer[pin][:n], m.processBuffer[pout])
		if err != nil {
			return 0, err
		}
		if out == 0 {
			return 0, nil
		}
		pin, pout = pout, pin
		n = out
	}

	if n > len(output) {
		return 0, ErrInsufficientBuffer
	}
	core.CopyInto(output, m.processBuffer[pin][:n])
	return n, nil
}
