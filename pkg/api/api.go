// Package api exposes the driver's network and port operations over a
// small JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/strataplane/nvpd/pkg/driver"
	"github.com/strataplane/nvpd/pkg/nvp"
)

// NetworkDriver is the driver surface the API serves.
type NetworkDriver interface {
	CreateNetwork(ctx context.Context, networkID, name string, params driver.ProviderParams) (*nvp.LogicalSwitch, error)
	DeleteNetwork(ctx context.Context, networkID string) error
	CreatePort(ctx context.Context, networkID, portID string, adminEnabled bool) (*nvp.LogicalPort, error)
	DeletePort(ctx context.Context, portID, switchUUID string) error
	SwitchesForNetwork(ctx context.Context, networkID string) ([]nvp.LogicalSwitch, error)
}

// Server handles the admin API.
type Server struct {
	driver NetworkDriver
	log    *zap.SugaredLogger
}

// NewServer returns an API server over the given driver.
func NewServer(d NetworkDriver, log *zap.SugaredLogger) *Server {
	return &Server{driver: d, log: log.Named("api")}
}

// Router builds the route table.
//
//	POST   /v1/networks                  — create a network (first switch)
//	DELETE /v1/networks/{id}             — delete all of a network's switches
//	GET    /v1/networks/{id}/switches    — list a network's switches
//	POST   /v1/networks/{id}/ports       — create a port on the network
//	DELETE /v1/ports/{id}                — delete a port (?switch= skips the lookup)
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/networks", s.handleCreateNetwork).Methods(http.MethodPost)
	r.HandleFunc("/v1/networks/{id}", s.handleDeleteNetwork).Methods(http.MethodDelete)
	r.HandleFunc("/v1/networks/{id}/switches", s.handleListSwitches).Methods(http.MethodGet)
	r.HandleFunc("/v1/networks/{id}/ports", s.handleCreatePort).Methods(http.MethodPost)
	r.HandleFunc("/v1/ports/{id}", s.handleDeletePort).Methods(http.MethodDelete)
	return r
}

type createNetworkRequest struct {
	NetworkID string `json:"network_id"`
	Name      string `json:"name"`
	PhysNet   string `json:"phys_net,omitempty"`
	NetType   string `json:"net_type,omitempty"`
	SegmentID *int   `json:"segment_id,omitempty"`
}

func (s *Server) handleCreateNetwork(w http.ResponseWriter, r *http.Request) {
	var req createNetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.NetworkID == "" {
		http.Error(w, "network_id is required", http.StatusBadRequest)
		return
	}

	params := driver.ProviderParams{
		PhysNet:   req.PhysNet,
		NetType:   driver.NetworkType(req.NetType),
		SegmentID: req.SegmentID,
	}
	sw, err := s.driver.CreateNetwork(r.Context(), req.NetworkID, req.Name, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sw)
}

func (s *Server) handleDeleteNetwork(w http.ResponseWriter, r *http.Request) {
	networkID := mux.Vars(r)["id"]
	if err := s.driver.DeleteNetwork(r.Context(), networkID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSwitches(w http.ResponseWriter, r *http.Request) {
	networkID := mux.Vars(r)["id"]
	switches, err := s.driver.SwitchesForNetwork(r.Context(), networkID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if switches == nil {
		switches = []nvp.LogicalSwitch{}
	}
	writeJSON(w, http.StatusOK, switches)
}

type createPortRequest struct {
	PortID string `json:"port_id"`
	// AdminStatusEnabled defaults to true when omitted.
	AdminStatusEnabled *bool `json:"admin_status_enabled,omitempty"`
}

func (s *Server) handleCreatePort(w http.ResponseWriter, r *http.Request) {
	networkID := mux.Vars(r)["id"]

	var req createPortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PortID == "" {
		http.Error(w, "port_id is required", http.StatusBadRequest)
		return
	}

	adminEnabled := true
	if req.AdminStatusEnabled != nil {
		adminEnabled = *req.AdminStatusEnabled
	}

	port, err := s.driver.CreatePort(r.Context(), networkID, req.PortID, adminEnabled)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, port)
}

func (s *Server) handleDeletePort(w http.ResponseWriter, r *http.Request) {
	portID := mux.Vars(r)["id"]
	switchUUID := r.URL.Query().Get("switch")

	if err := s.driver.DeletePort(r.Context(), portID, switchUUID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps the driver's error taxonomy onto HTTP statuses.
// Validation failures are the caller's fault; unresolved provider
// context and ambiguous placement are consistency conflicts; anything
// else is a controller-side fault.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ambiguous *driver.AmbiguousPortError

	status := http.StatusBadGateway
	switch {
	case driver.IsValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, driver.ErrBadControllerState):
		status = http.StatusConflict
	case errors.As(err, &ambiguous):
		status = http.StatusConflict
	case nvp.IsNotFound(err):
		status = http.StatusNotFound
	}

	s.log.Warnw("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
