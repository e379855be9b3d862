package midi

import (
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// scanTimeout bounds port enumeration; CoreMIDI can hang when the MIDI
// server is wedged.
const scanTimeout = 3 * time.Second

type portsResult struct {
	ins  []drivers.In
	outs []drivers.Out
}

func scanPorts() (portsResult, bool) {
	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r, true
	case <-time.After(scanTimeout):
		return portsResult{}, false
	}
}

// PortNames lists available input and output port names
func PortNames() (ins, outs []string) {
	r, ok := scanPorts()
	if !ok {
		return nil, nil
	}
	for _, p := range r.ins {
		ins = append(ins, p.String())
	}
	for _, p := range r.outs {
		outs = append(outs, p.String())
	}
	return ins, outs
}

// findOutPort matches a port by case-insensitive substring, the way device
// names show up with adapter prefixes on most systems.
func findOutPort(name string) (drivers.Out, error) {
	r, ok := scanPorts()
	if !ok {
		return nil, ErrPortNotFound
	}
	want := strings.ToLower(name)
	for _, p := range r.outs {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	return nil, ErrPortNotFound
}

func findInPort(name string) (drivers.In, error) {
	r, ok := scanPorts()
	if !ok {
		return nil, ErrPortNotFound
	}
	want := strings.ToLower(name)
	for _, p := range r.ins {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	return nil, ErrPortNotFound
}
