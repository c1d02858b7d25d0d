package cgen

import "fmt"

// Options tune the generated firmware.
type Options struct {
	// Debug is the initial value of the firmware's debug flag.
	Debug        bool
	StackDepth   int
	Priority     int
	JSONCapacity int
	SerialBaud   int
	IdleDelayMS  int
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Debug:        true,
		StackDepth:   512,
		Priority:     1,
		JSONCapacity: 200,
		SerialBaud:   9600,
		IdleDelayMS:  100,
	}
}

// Validate rejects settings that would produce firmware which cannot run.
func (o Options) Validate() error {
	switch {
	case o.StackDepth <= 0:
		return fmt.Errorf("stack depth must be positive, got %d", o.StackDepth)
	case o.Priority < 0:
		return fmt.Errorf("task priority must not be negative, got %d", o.Priority)
	case o.JSONCapacity <= 0:
		return fmt.Errorf("json capacity must be positive, got %d", o.JSONCapacity)
	case o.SerialBaud <= 0:
		return fmt.Errorf("serial baud rate must be positive, got %d", o.SerialBaud)
	case o.IdleDelayMS < 0:
		return fmt.Errorf("idle delay must not be negative, got %d", o.IdleDelayMS)
	}
	return nil
}
