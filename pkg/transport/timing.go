package transport

import "fmt"

// Timing status bits.
const (
	TimingOutOfRange    uint8 = 0x80
	TimingUnstable      uint8 = 0x40
	TimingPositiveHSync uint8 = 0x02
	TimingPositiveVSync uint8 = 0x01
)

// Timing is a display's timing report: the sync status and the frequencies
// of the signal it currently receives.
type Timing struct {
	Status uint8

	// Horizontal is the line frequency in units of 10Hz.
	Horizontal uint16

	// Vertical is the refresh rate in units of 0.01Hz.
	Vertical uint16
}

// HorizontalHz returns the line frequency in Hz.
func (t Timing) HorizontalHz() float64 { return float64(t.Horizontal) * 10 }

// VerticalHz returns the refresh rate in Hz.
func (t Timing) VerticalHz() float64 { return float64(t.Vertical) / 100 }

// OutOfRange reports whether the display flagged the signal as out of range.
func (t Timing) OutOfRange() bool { return t.Status&TimingOutOfRange != 0 }

// Unstable reports whether the display reported an unstable sync count.
func (t Timing) Unstable() bool { return t.Status&TimingUnstable != 0 }

func (t Timing) String() string {
	s := fmt.Sprintf("%.2fkHz %.2fHz", t.HorizontalHz()/1000, t.VerticalHz())
	if t.OutOfRange() {
		s += " out-of-range"
	}
	if t.Unstable() {
		s += " unstable"
	}
	return s
}
