package hardware

// Nop discards every command. Used when the engine runs without a
// device link.
type Nop struct{}

func (Nop) SendElevation(float64) error         { return nil }
func (Nop) AddElevationOffset(float64) error    { return nil }
func (Nop) SendVibration(_, _, _ float64) error { return nil }
func (Nop) SetMaxElevationSpeed(float64) error  { return nil }

var _ Commander = Nop{}
