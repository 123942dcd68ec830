package nvp

// Tag scopes the driver attaches to controller objects. The metadata
// layer above finds its objects back through these.
const (
	TagScopeNetworkID = "q_net_id"
	TagScopePortID    = "q_port_id"
	TagScopeTenantID  = "os_tid"
)

// TransportType is the wire-level encapsulation of a transport zone.
type TransportType string

const (
	TransportBridge TransportType = "bridge"
	TransportGRE    TransportType = "gre"
	TransportSTT    TransportType = "stt"
	TransportLocal  TransportType = "local"
)

// Tag is a scoped key/value attached to a controller object.
type Tag struct {
	Scope string `json:"scope"`
	Tag   string `json:"tag"`
}

// VLANTranslation is one entry of a bridge zone's vlan translation table.
type VLANTranslation struct {
	Transport int `json:"transport"`
}

// BindingConfig carries per-zone binding configuration. Only bridge
// zones tagged with a vlan populate it.
type BindingConfig struct {
	VLANTranslation []VLANTranslation `json:"vlan_translation,omitempty"`
}

// TransportZoneBinding attaches a logical switch to a transport zone.
type TransportZoneBinding struct {
	ZoneUUID      string         `json:"zone_uuid"`
	TransportType TransportType  `json:"transport_type"`
	VLANID        *int           `json:"vlan_id,omitempty"`
	BindingConfig *BindingConfig `json:"binding_config,omitempty"`
}

// SwitchStatus is the LogicalSwitchStatus relation reported by the
// controller when a query asks for it.
type SwitchStatus struct {
	LportCount int `json:"lport_count"`
}

// SwitchRelations holds the optional _relations block of a switch record.
type SwitchRelations struct {
	LogicalSwitchStatus *SwitchStatus `json:"LogicalSwitchStatus,omitempty"`
}

// LogicalSwitch is a switch record as returned by the controller.
type LogicalSwitch struct {
	UUID           string                 `json:"uuid"`
	DisplayName    string                 `json:"display_name"`
	TransportZones []TransportZoneBinding `json:"transport_zones,omitempty"`
	Tags           []Tag                  `json:"tags,omitempty"`
	Relations      *SwitchRelations       `json:"_relations,omitempty"`
}

// PortCount returns the live port count from the LogicalSwitchStatus
// relation, or 0 when the relation was not requested.
func (s *LogicalSwitch) PortCount() int {
	if s.Relations == nil || s.Relations.LogicalSwitchStatus == nil {
		return 0
	}
	return s.Relations.LogicalSwitchStatus.LportCount
}

// SwitchConfig is the LogicalSwitchConfig relation of a port record,
// identifying the switch that hosts the port.
type SwitchConfig struct {
	UUID string `json:"uuid"`
}

// PortRelations holds the optional _relations block of a port record.
type PortRelations struct {
	LogicalSwitchConfig *SwitchConfig `json:"LogicalSwitchConfig,omitempty"`
}

// LogicalPort is a port record as returned by the controller.
type LogicalPort struct {
	UUID               string         `json:"uuid"`
	AdminStatusEnabled bool           `json:"admin_status_enabled"`
	Tags               []Tag          `json:"tags,omitempty"`
	Relations          *PortRelations `json:"_relations,omitempty"`
}

// SwitchUUID returns the hosting switch from the LogicalSwitchConfig
// relation, or "" when the relation was not requested.
func (p *LogicalPort) SwitchUUID() string {
	if p.Relations == nil || p.Relations.LogicalSwitchConfig == nil {
		return ""
	}
	return p.Relations.LogicalSwitchConfig.UUID
}

// SwitchAttrs are the attributes for creating a logical switch.
type SwitchAttrs struct {
	DisplayName string `json:"display_name"`
	Tags        []Tag  `json:"tags,omitempty"`
}

// PortAttrs are the attributes for creating a logical port.
type PortAttrs struct {
	AdminStatusEnabled bool  `json:"admin_status_enabled"`
	Tags               []Tag `json:"tags,omitempty"`
}

// queryResult is the envelope every collection query comes back in.
type queryResult[T any] struct {
	Results     []T `json:"results"`
	ResultCount int `json:"result_count"`
}
