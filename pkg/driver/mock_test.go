package driver

import (
	"context"
	"fmt"

	"github.com/strataplane/nvpd/pkg/nvp"
)

// fakeController returns canned query results and records every
// mutating call.
type fakeController struct {
	switches  []nvp.LogicalSwitch
	ports     []nvp.LogicalPort
	zoneCount int

	switchQueries int
	portQueries   int
	zoneQueries   int

	createdSwitches []nvp.SwitchAttrs
	deletedSwitches []string
	createdPorts    []createdPort
	deletedPorts    []deletedPort
	bindings        []recordedBinding
}

type createdPort struct {
	SwitchUUID string
	Attrs      nvp.PortAttrs
}

type deletedPort struct {
	SwitchUUID string
	PortUUID   string
}

type recordedBinding struct {
	SwitchUUID string
	Binding    nvp.TransportZoneBinding
}

func (f *fakeController) QuerySwitches(_ context.Context, _ []nvp.Tag) ([]nvp.LogicalSwitch, error) {
	f.switchQueries++
	return f.switches, nil
}

func (f *fakeController) CreateSwitch(_ context.Context, attrs nvp.SwitchAttrs) (*nvp.LogicalSwitch, error) {
	f.createdSwitches = append(f.createdSwitches, attrs)
	return &nvp.LogicalSwitch{
		UUID:        fmt.Sprintf("sw-created-%d", len(f.createdSwitches)),
		DisplayName: attrs.DisplayName,
		Tags:        attrs.Tags,
	}, nil
}

func (f *fakeController) DeleteSwitch(_ context.Context, switchUUID string) error {
	f.deletedSwitches = append(f.deletedSwitches, switchUUID)
	return nil
}

func (f *fakeController) BindTransportZone(_ context.Context, switchUUID string, binding nvp.TransportZoneBinding) error {
	f.bindings = append(f.bindings, recordedBinding{SwitchUUID: switchUUID, Binding: binding})
	return nil
}

func (f *fakeController) TransportZoneCount(_ context.Context, _ string) (int, error) {
	f.zoneQueries++
	return f.zoneCount, nil
}

func (f *fakeController) CreatePort(_ context.Context, switchUUID string, attrs nvp.PortAttrs) (*nvp.LogicalPort, error) {
	f.createdPorts = append(f.createdPorts, createdPort{SwitchUUID: switchUUID, Attrs: attrs})
	return &nvp.LogicalPort{
		UUID:               fmt.Sprintf("lp-created-%d", len(f.createdPorts)),
		AdminStatusEnabled: attrs.AdminStatusEnabled,
		Tags:               attrs.Tags,
	}, nil
}

func (f *fakeController) QueryPorts(_ context.Context, _ []nvp.Tag) ([]nvp.LogicalPort, error) {
	f.portQueries++
	return f.ports, nil
}

func (f *fakeController) DeletePort(_ context.Context, switchUUID, portUUID string) error {
	f.deletedPorts = append(f.deletedPorts, deletedPort{SwitchUUID: switchUUID, PortUUID: portUUID})
	return nil
}

var _ Controller = (*fakeController)(nil)

// fakeStore answers NetworkExists with a fixed result.
type fakeStore struct {
	exists bool
	err    error
}

func (f *fakeStore) NetworkExists(_ context.Context, _ string) (bool, error) {
	return f.exists, f.err
}

func switchWithPorts(uuid string, portCount int) nvp.LogicalSwitch {
	return nvp.LogicalSwitch{
		UUID:        uuid,
		DisplayName: "net-" + uuid,
		Relations: &nvp.SwitchRelations{
			LogicalSwitchStatus: &nvp.SwitchStatus{LportCount: portCount},
		},
	}
}

func portOnSwitch(uuid, switchUUID string) nvp.LogicalPort {
	return nvp.LogicalPort{
		UUID: uuid,
		Relations: &nvp.PortRelations{
			LogicalSwitchConfig: &nvp.SwitchConfig{UUID: switchUUID},
		},
	}
}

func newTestDriver(f *fakeController, maxPorts int) *Driver {
	return New(Options{Controller: f, MaxPortsPerSwitch: maxPorts})
}
