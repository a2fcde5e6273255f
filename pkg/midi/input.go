package midi

import (
	"errors"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrNoInputPorts is returned when the driver reports no input ports
var ErrNoInputPorts = errors.New("no midi input ports")

// InPorts lists the input ports of the registered driver
func InPorts() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// Listen forwards every message arriving on an input port to h. The port is
// matched by name; an empty name selects the first port. h runs on the
// driver's goroutine.
func Listen(port string, h func(gomidi.Message)) (stop func(), err error) {
	in, err := findInPort(port)
	if err != nil {
		return nil, err
	}

	stop, err = gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		h(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("listen to %s: %w", in, err)
	}
	return stop, nil
}

func findInPort(name string) (drivers.In, error) {
	if name != "" {
		in, err := gomidi.FindInPort(name)
		if err != nil {
			return nil, fmt.Errorf("midi input %q: %w", name, err)
		}
		return in, nil
	}

	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		return nil, ErrNoInputPorts
	}
	return ins[0], nil
}
