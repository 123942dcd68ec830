package driver

import (
	"context"
	"fmt"

	"github.com/strataplane/nvpd/pkg/nvp"
)

// validate applies the provider-parameter decision table and derives
// the wire transport type. It is pure: no controller calls, so a
// failure here is guaranteed to precede any mutation.
//
// Returns bind=false for a private network (both params absent).
func (p ProviderParams) validate() (transport nvp.TransportType, bind bool, err error) {
	if p.PhysNet == "" && p.NetType == "" {
		return "", false, nil
	}
	if p.PhysNet == "" || p.NetType == "" {
		return "", false, ErrProviderNetParams
	}

	transport, ok := transportTypeFor[p.NetType]
	if !ok {
		return "", false, &InvalidNetworkTypeError{NetType: string(p.NetType)}
	}

	if p.NetType == NetworkTypeVLAN && p.SegmentID == nil {
		return "", false, ErrSegmentIDRequired
	}
	if p.NetType != NetworkTypeVLAN && p.SegmentID != nil {
		return "", false, ErrSegmentIDUnsupported
	}

	return transport, true, nil
}

// resolveTransportZone reports whether the controller knows a transport
// zone for the given physical network. Always a live query.
func (d *Driver) resolveTransportZone(ctx context.Context, zoneUUID string) (bool, error) {
	count, err := d.controller.TransportZoneCount(ctx, zoneUUID)
	if err != nil {
		return false, fmt.Errorf("querying transport zone %s: %w", zoneUUID, err)
	}
	return count >= 1, nil
}

// ConfigureProviderNetwork validates provider params against the
// controller's transport zones and binds the switch accordingly.
//
// With both phys_net and net_type absent this is a no-op: the switch
// stays unbound, which is the default for private networks. When a zone
// is applied, exactly one binding call is issued.
func (d *Driver) ConfigureProviderNetwork(ctx context.Context, switchUUID string, p ProviderParams) error {
	transport, bind, err := p.validate()
	if err != nil {
		return err
	}
	if !bind {
		return nil
	}

	found, err := d.resolveTransportZone(ctx, p.PhysNet)
	if err != nil {
		return err
	}
	if !found {
		return &PhysicalNetworkNotFoundError{PhysNet: p.PhysNet}
	}

	binding := nvp.TransportZoneBinding{
		ZoneUUID:      p.PhysNet,
		TransportType: transport,
	}
	if p.NetType == NetworkTypeVLAN {
		binding.VLANID = p.SegmentID
	}

	if err := d.controller.BindTransportZone(ctx, switchUUID, binding); err != nil {
		return fmt.Errorf("binding switch %s to zone %s: %w", switchUUID, p.PhysNet, err)
	}

	d.log.Infow("bound transport zone",
		"switch", switchUUID,
		"zone", p.PhysNet,
		"transport_type", transport,
		"vlan_id", binding.VLANID,
	)
	return nil
}
