package driver

import (
	"context"
	"fmt"

	"github.com/strataplane/nvpd/pkg/metrics"
	"github.com/strataplane/nvpd/pkg/nvp"
)

// CreatePort attaches a port for the given tenant port id to the
// network, on whichever switch the capacity scan selects (creating one
// if needed). Returns the controller's port record.
func (d *Driver) CreatePort(ctx context.Context, networkID, portID string, adminEnabled bool) (*nvp.LogicalPort, error) {
	switchUUID, err := d.selectOrCreateSwitch(ctx, networkID)
	if err != nil {
		return nil, err
	}

	tags := append(d.networkTags(networkID), nvp.Tag{Scope: nvp.TagScopePortID, Tag: portID})
	port, err := d.controller.CreatePort(ctx, switchUUID, nvp.PortAttrs{
		AdminStatusEnabled: adminEnabled,
		Tags:               tags,
	})
	if err != nil {
		return nil, fmt.Errorf("creating port %s on switch %s: %w", portID, switchUUID, err)
	}
	metrics.PortsCreated.Inc()

	if port.Relations == nil {
		port.Relations = &nvp.PortRelations{}
	}
	if port.Relations.LogicalSwitchConfig == nil {
		port.Relations.LogicalSwitchConfig = &nvp.SwitchConfig{UUID: switchUUID}
	}

	d.log.Infow("created logical port",
		"network", networkID,
		"port", portID,
		"uuid", port.UUID,
		"switch", switchUUID,
		"admin_enabled", adminEnabled,
	)
	return port, nil
}

// DeletePort removes a port. With switchUUID given the delete goes
// straight to that switch, no query issued. Otherwise the port is
// located by tag; the result must resolve to exactly one hosting
// switch, anything else is a data-consistency fault surfaced as
// AmbiguousPortError.
func (d *Driver) DeletePort(ctx context.Context, portID, switchUUID string) error {
	portUUID := portID

	if switchUUID == "" {
		ports, err := d.controller.QueryPorts(ctx, []nvp.Tag{
			{Scope: nvp.TagScopePortID, Tag: portID},
		})
		if err != nil {
			return fmt.Errorf("querying port %s: %w", portID, err)
		}

		hosts := make(map[string]struct{}, len(ports))
		for i := range ports {
			if uuid := ports[i].SwitchUUID(); uuid != "" {
				hosts[uuid] = struct{}{}
			}
		}
		if len(hosts) != 1 {
			return &AmbiguousPortError{PortID: portID, Switches: len(hosts)}
		}
		for uuid := range hosts {
			switchUUID = uuid
		}
		portUUID = ports[0].UUID
	}

	if err := d.controller.DeletePort(ctx, switchUUID, portUUID); err != nil {
		return fmt.Errorf("deleting port %s on switch %s: %w", portUUID, switchUUID, err)
	}
	metrics.PortsDeleted.Inc()

	d.log.Infow("deleted logical port", "port", portID, "switch", switchUUID)
	return nil
}
