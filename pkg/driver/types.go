package driver

import (
	"github.com/strataplane/nvpd/pkg/nvp"
)

// NetworkType is the caller-facing network type of a provider network.
type NetworkType string

const (
	NetworkTypeFlat   NetworkType = "flat"
	NetworkTypeVLAN   NetworkType = "vlan"
	NetworkTypeGRE    NetworkType = "gre"
	NetworkTypeSTT    NetworkType = "stt"
	NetworkTypeLocal  NetworkType = "local"
	NetworkTypeBridge NetworkType = "bridge"
)

// transportTypeFor maps a caller-facing network type to the wire-level
// transport type. flat and vlan both ride a bridge zone; vlan adds a
// vlan id on top. bridge is accepted because internal calls already
// speak the controller's name for it.
var transportTypeFor = map[NetworkType]nvp.TransportType{
	NetworkTypeFlat:   nvp.TransportBridge,
	NetworkTypeBridge: nvp.TransportBridge,
	NetworkTypeVLAN:   nvp.TransportBridge,
	NetworkTypeGRE:    nvp.TransportGRE,
	NetworkTypeSTT:    nvp.TransportSTT,
	NetworkTypeLocal:  nvp.TransportLocal,
}

// ProviderParams is the caller-supplied provider placement intent for a
// network. The zero value means a private network with no placement.
type ProviderParams struct {
	// PhysNet is the transport zone uuid of the physical network.
	PhysNet string
	// NetType is one of flat, vlan, gre, stt, local, bridge.
	NetType NetworkType
	// SegmentID is the vlan id; only valid (and required) for vlan.
	SegmentID *int
}

// NetworkDetails is the provider configuration derived from a network's
// existing switches. A nil *NetworkDetails means the network record
// itself could not be resolved, which is distinct from an empty value
// (resolved, no provider constraints).
type NetworkDetails struct {
	NetworkName string
	PhysNet     string
	PhysType    nvp.TransportType
	SegmentID   *int
}

// Empty reports whether no provider configuration was derivable.
func (d *NetworkDetails) Empty() bool {
	return d.NetworkName == "" && d.PhysNet == "" && d.PhysType == "" && d.SegmentID == nil
}

// providerParams converts derived details back into creation intent for
// the next switch of the same network, keeping it consistent with the
// original placement.
func (d *NetworkDetails) providerParams() ProviderParams {
	netType := NetworkType(d.PhysType)
	// A bridge zone carrying a vlan id was created for a vlan network;
	// the wire type loses that distinction, the vlan id keeps it.
	if netType == NetworkTypeBridge && d.SegmentID != nil {
		netType = NetworkTypeVLAN
	}
	return ProviderParams{
		PhysNet:   d.PhysNet,
		NetType:   netType,
		SegmentID: d.SegmentID,
	}
}
