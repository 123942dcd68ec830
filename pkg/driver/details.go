package driver

import (
	"context"
	"fmt"

	"github.com/strataplane/nvpd/pkg/nvp"
)

// extractNetworkDetails derives a network's provider configuration from
// its existing switches.
//
// An empty switch list yields empty details: no provider constraints
// are known and a new switch may be created unbound. Otherwise the
// first switch is authoritative; a network already backed by switches
// must keep new switches consistent with the original placement, and
// divergent bindings across switches are not reconciled here.
func extractNetworkDetails(switches []nvp.LogicalSwitch) *NetworkDetails {
	if len(switches) == 0 {
		return &NetworkDetails{}
	}

	first := switches[0]
	details := &NetworkDetails{NetworkName: first.DisplayName}

	if len(first.TransportZones) == 0 {
		return details
	}

	zone := first.TransportZones[0]
	details.PhysNet = zone.ZoneUUID
	details.PhysType = zone.TransportType
	if zone.BindingConfig != nil && len(zone.BindingConfig.VLANTranslation) > 0 {
		segment := zone.BindingConfig.VLANTranslation[0].Transport
		details.SegmentID = &segment
	}
	return details
}

// networkDetails resolves provider details for a network, consulting
// the metadata store when one is configured. A nil result means the
// network record itself is missing: no port may be attached without
// resolvable provider context.
func (d *Driver) networkDetails(ctx context.Context, networkID string, switches []nvp.LogicalSwitch) (*NetworkDetails, error) {
	if d.store != nil {
		known, err := d.store.NetworkExists(ctx, networkID)
		if err != nil {
			return nil, fmt.Errorf("resolving network %s: %w", networkID, err)
		}
		if !known {
			return nil, nil
		}
	}
	return extractNetworkDetails(switches), nil
}
