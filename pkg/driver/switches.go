package driver

import (
	"context"
	"fmt"

	"github.com/strataplane/nvpd/pkg/metrics"
	"github.com/strataplane/nvpd/pkg/nvp"
)

// lswitchesForNetwork queries the controller for the switches tagged
// with the network, including each switch's live port count. Every call
// is a fresh query; there is no ordering guarantee beyond controller
// response order.
func (d *Driver) lswitchesForNetwork(ctx context.Context, networkID string) ([]nvp.LogicalSwitch, error) {
	switches, err := d.controller.QuerySwitches(ctx, []nvp.Tag{
		{Scope: nvp.TagScopeNetworkID, Tag: networkID},
	})
	if err != nil {
		return nil, fmt.Errorf("querying switches for network %s: %w", networkID, err)
	}
	return switches, nil
}

// SwitchesForNetwork returns the switches currently backing a network.
func (d *Driver) SwitchesForNetwork(ctx context.Context, networkID string) ([]nvp.LogicalSwitch, error) {
	return d.lswitchesForNetwork(ctx, networkID)
}

// selectOrCreateSwitch picks the switch that will host a network's next
// port. First-fit: the first switch with spare capacity wins, and with
// no bound any switch at all. Only when every switch is saturated, or
// none exist, is a new one created, configured from the network's
// derived provider details.
func (d *Driver) selectOrCreateSwitch(ctx context.Context, networkID string) (string, error) {
	switches, err := d.lswitchesForNetwork(ctx, networkID)
	if err != nil {
		return "", err
	}

	details, err := d.networkDetails(ctx, networkID, switches)
	if err != nil {
		return "", err
	}
	if details == nil {
		return "", fmt.Errorf("network %s: %w", networkID, ErrBadControllerState)
	}

	for i := range switches {
		sw := &switches[i]
		if d.maxPorts == 0 || sw.PortCount() < d.maxPorts {
			return sw.UUID, nil
		}
	}

	if len(switches) > 0 {
		d.log.Infow("all switches saturated, spanning network onto a new switch",
			"network", networkID,
			"switches", len(switches),
			"max_ports_per_switch", d.maxPorts,
		)
	}
	return d.createSwitch(ctx, networkID, details)
}

// createSwitch creates one logical switch for a network and applies the
// provider configuration carried in details. Params are validated
// before the create call goes out; a binding failure after creation is
// surfaced as-is, with no compensating delete.
func (d *Driver) createSwitch(ctx context.Context, networkID string, details *NetworkDetails) (string, error) {
	params := details.providerParams()
	if _, _, err := params.validate(); err != nil {
		return "", err
	}

	name := details.NetworkName
	if name == "" {
		name = networkID
	}

	sw, err := d.controller.CreateSwitch(ctx, nvp.SwitchAttrs{
		DisplayName: name,
		Tags:        d.networkTags(networkID),
	})
	if err != nil {
		return "", fmt.Errorf("creating switch for network %s: %w", networkID, err)
	}
	metrics.SwitchesCreated.Inc()

	if err := d.ConfigureProviderNetwork(ctx, sw.UUID, params); err != nil {
		return "", err
	}

	d.log.Infow("created logical switch", "network", networkID, "switch", sw.UUID, "name", name)
	return sw.UUID, nil
}

// CreateNetwork provisions the first logical switch for a network,
// named after it and bound per the given provider params. Returns the
// created switch.
func (d *Driver) CreateNetwork(ctx context.Context, networkID, name string, params ProviderParams) (*nvp.LogicalSwitch, error) {
	if _, _, err := params.validate(); err != nil {
		metrics.ValidationFailures.Inc()
		return nil, err
	}
	if name == "" {
		name = networkID
	}

	sw, err := d.controller.CreateSwitch(ctx, nvp.SwitchAttrs{
		DisplayName: name,
		Tags:        d.networkTags(networkID),
	})
	if err != nil {
		return nil, fmt.Errorf("creating switch for network %s: %w", networkID, err)
	}
	metrics.SwitchesCreated.Inc()

	if err := d.ConfigureProviderNetwork(ctx, sw.UUID, params); err != nil {
		if IsValidationError(err) {
			metrics.ValidationFailures.Inc()
		}
		return nil, err
	}

	d.log.Infow("created network", "network", networkID, "switch", sw.UUID, "name", name)
	return sw, nil
}

// DeleteNetwork deletes every switch tagged with the network. A network
// with no switches left is a successful no-op.
func (d *Driver) DeleteNetwork(ctx context.Context, networkID string) error {
	switches, err := d.lswitchesForNetwork(ctx, networkID)
	if err != nil {
		return err
	}

	for i := range switches {
		sw := &switches[i]
		if err := d.controller.DeleteSwitch(ctx, sw.UUID); err != nil {
			return fmt.Errorf("deleting switch %s of network %s: %w", sw.UUID, networkID, err)
		}
		metrics.SwitchesDeleted.Inc()
	}

	d.log.Infow("deleted network", "network", networkID, "switches", len(switches))
	return nil
}
