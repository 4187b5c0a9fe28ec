package hardware

import "sync"

// VibrationCall records one SendVibration invocation.
type VibrationCall struct {
	Amplitude   float64
	FrequencyHz float64
	DurationMS  float64
}

// Mock is an in-memory Commander recording every call for tests.
type Mock struct {
	mu sync.Mutex

	Elevations []float64
	Offsets    []float64
	Vibrations []VibrationCall
	Speeds     []float64

	// Fail, when set, is returned by every command method.
	Fail error
}

// NewMock creates an empty mock commander.
func NewMock() *Mock { return &Mock{} }

func (m *Mock) SendElevation(value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Elevations = append(m.Elevations, value)
	return nil
}

func (m *Mock) AddElevationOffset(delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Offsets = append(m.Offsets, delta)
	return nil
}

func (m *Mock) SendVibration(amplitude, frequencyHz, durationMS float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Vibrations = append(m.Vibrations, VibrationCall{amplitude, frequencyHz, durationMS})
	return nil
}

func (m *Mock) SetMaxElevationSpeed(unitsPerSecond float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Speeds = append(m.Speeds, unitsPerSecond)
	return nil
}

// LastElevation returns the most recent elevation value and whether any
// elevation was sent.
func (m *Mock) LastElevation() (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Elevations) == 0 {
		return 0, false
	}
	return m.Elevations[len(m.Elevations)-1], true
}

// VibrationCount returns how many vibration pulses were sent.
func (m *Mock) VibrationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Vibrations)
}

var _ Commander = (*Mock)(nil)
