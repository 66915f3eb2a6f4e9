package service

import (
	"padcontrol/gamepad"
	"padcontrol/pad"
)

// PadManager ties together the one managed virtual device and the physical
// input source, and reports their connectivity.
type PadManager struct {
	device *pad.Device
	source gamepad.Source
}

func NewPadManager(device *pad.Device, source gamepad.Source) *PadManager {
	return &PadManager{
		device: device,
		source: source,
	}
}

// PadStatus is the connectivity view returned by the status endpoint.
type PadStatus struct {
	VirtualConnected  bool `json:"VirtualConnected"`
	PhysicalConnected bool `json:"PhysicalConnected"`
}

func (m *PadManager) Status() PadStatus {
	return PadStatus{
		VirtualConnected:  m.device.Connected(),
		PhysicalConnected: m.source.Connected(),
	}
}

// Device returns the managed virtual device.
func (m *PadManager) Device() *pad.Device {
	return m.device
}
