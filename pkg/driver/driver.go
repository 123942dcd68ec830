// Package driver maps tenant logical networks onto logical switches
// hosted by an NVP-style controller. It decides which switch hosts a
// new port, when capacity pressure forces another switch into existence
// for the same network, and whether a provider network's placement
// attributes are legal.
//
// The driver keeps no state between calls: every operation re-queries
// the controller, so each call is consistent with the controller's view
// at call time. Overcommit between concurrent callers is arbitrated by
// the controller, not prevented here.
package driver

import (
	"context"

	"go.uber.org/zap"

	"github.com/strataplane/nvpd/pkg/nvp"
)

// Controller is the subset of the controller transport client the
// driver consumes.
type Controller interface {
	QuerySwitches(ctx context.Context, tags []nvp.Tag) ([]nvp.LogicalSwitch, error)
	CreateSwitch(ctx context.Context, attrs nvp.SwitchAttrs) (*nvp.LogicalSwitch, error)
	DeleteSwitch(ctx context.Context, switchUUID string) error
	BindTransportZone(ctx context.Context, switchUUID string, binding nvp.TransportZoneBinding) error
	TransportZoneCount(ctx context.Context, zoneUUID string) (int, error)
	CreatePort(ctx context.Context, switchUUID string, attrs nvp.PortAttrs) (*nvp.LogicalPort, error)
	QueryPorts(ctx context.Context, tags []nvp.Tag) ([]nvp.LogicalPort, error)
	DeletePort(ctx context.Context, switchUUID, portUUID string) error
}

var _ Controller = (*nvp.Client)(nil)

// MetadataStore resolves whether a network id is known to the tenant
// metadata layer. It is the collaborator that distinguishes "network
// has no switches yet" from "network does not exist".
type MetadataStore interface {
	NetworkExists(ctx context.Context, networkID string) (bool, error)
}

// Options configure a Driver.
type Options struct {
	Controller Controller

	// Store is optional. Without one, provider details are always
	// derived from the switch query alone.
	Store MetadataStore

	// MaxPortsPerSwitch bounds ports per switch. 0 means unbounded.
	MaxPortsPerSwitch int

	// TenantID, when set, is tagged onto every created object.
	TenantID string

	Logger *zap.SugaredLogger
}

// Driver is the control-plane core. Safe for concurrent use; it holds
// no mutable state.
type Driver struct {
	controller Controller
	store      MetadataStore
	maxPorts   int
	tenantID   string
	log        *zap.SugaredLogger
}

// New returns a Driver for the given controller.
func New(opts Options) *Driver {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Driver{
		controller: opts.Controller,
		store:      opts.Store,
		maxPorts:   opts.MaxPortsPerSwitch,
		tenantID:   opts.TenantID,
		log:        log.Named("driver"),
	}
}

// networkTags returns the tags stamped on every object belonging to a
// network.
func (d *Driver) networkTags(networkID string) []nvp.Tag {
	tags := []nvp.Tag{{Scope: nvp.TagScopeNetworkID, Tag: networkID}}
	if d.tenantID != "" {
		tags = append(tags, nvp.Tag{Scope: nvp.TagScopeTenantID, Tag: d.tenantID})
	}
	return tags
}
