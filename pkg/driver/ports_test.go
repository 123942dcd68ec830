package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/strataplane/nvpd/pkg/nvp"
)

func TestCreatePort(t *testing.T) {
	fake := &fakeController{
		switches: []nvp.LogicalSwitch{switchWithPorts("sw-a", 0)},
	}
	d := newTestDriver(fake, 0)

	port, err := d.CreatePort(context.Background(), "net-1", "port-1", true)
	if err != nil {
		t.Fatalf("CreatePort: %v", err)
	}
	if port.UUID == "" {
		t.Error("expected a port uuid")
	}
	if port.SwitchUUID() != "sw-a" {
		t.Errorf("port hosted on %q, want sw-a", port.SwitchUUID())
	}

	if len(fake.createdPorts) != 1 {
		t.Fatalf("expected 1 port creation, got %d", len(fake.createdPorts))
	}
	created := fake.createdPorts[0]
	if created.SwitchUUID != "sw-a" {
		t.Errorf("port created on %q, want sw-a", created.SwitchUUID)
	}
	if !created.Attrs.AdminStatusEnabled {
		t.Error("expected admin status enabled")
	}

	tags := map[string]string{}
	for _, tag := range created.Attrs.Tags {
		tags[tag.Scope] = tag.Tag
	}
	if tags[nvp.TagScopeNetworkID] != "net-1" {
		t.Errorf("network tag %q, want net-1", tags[nvp.TagScopeNetworkID])
	}
	if tags[nvp.TagScopePortID] != "port-1" {
		t.Errorf("port tag %q, want port-1", tags[nvp.TagScopePortID])
	}
}

func TestCreatePortDisabled(t *testing.T) {
	fake := &fakeController{
		switches: []nvp.LogicalSwitch{switchWithPorts("sw-a", 0)},
	}
	d := newTestDriver(fake, 0)

	port, err := d.CreatePort(context.Background(), "net-1", "port-1", false)
	if err != nil {
		t.Fatalf("CreatePort: %v", err)
	}
	if port.AdminStatusEnabled {
		t.Error("expected admin status disabled")
	}
	if fake.createdPorts[0].Attrs.AdminStatusEnabled {
		t.Error("create call carried admin status enabled, want disabled")
	}
}

func TestCreatePortUnresolvedNetworkFails(t *testing.T) {
	fake := &fakeController{}
	d := New(Options{
		Controller: fake,
		Store:      &fakeStore{exists: false},
	})

	_, err := d.CreatePort(context.Background(), "net-1", "port-1", true)
	if !errors.Is(err, ErrBadControllerState) {
		t.Fatalf("got error %v, want ErrBadControllerState", err)
	}
	if len(fake.createdPorts) != 0 {
		t.Errorf("expected no port creation, got %d", len(fake.createdPorts))
	}
}

func TestDeletePortWithSwitchGiven(t *testing.T) {
	fake := &fakeController{}
	d := newTestDriver(fake, 0)

	if err := d.DeletePort(context.Background(), "lp-1", "sw-a"); err != nil {
		t.Fatalf("DeletePort: %v", err)
	}
	if fake.portQueries != 0 {
		t.Errorf("expected no port query when the switch is given, got %d", fake.portQueries)
	}
	if len(fake.deletedPorts) != 1 {
		t.Fatalf("expected 1 port deletion, got %d", len(fake.deletedPorts))
	}
	if del := fake.deletedPorts[0]; del.SwitchUUID != "sw-a" || del.PortUUID != "lp-1" {
		t.Errorf("deleted %+v, want sw-a/lp-1", del)
	}
}

func TestDeletePortResolvesSingleSwitch(t *testing.T) {
	fake := &fakeController{
		ports: []nvp.LogicalPort{portOnSwitch("lp-1", "sw-a")},
	}
	d := newTestDriver(fake, 0)

	if err := d.DeletePort(context.Background(), "port-1", ""); err != nil {
		t.Fatalf("DeletePort: %v", err)
	}
	if fake.portQueries != 1 {
		t.Errorf("expected 1 port query, got %d", fake.portQueries)
	}
	if len(fake.deletedPorts) != 1 {
		t.Fatalf("expected 1 port deletion, got %d", len(fake.deletedPorts))
	}
	if del := fake.deletedPorts[0]; del.SwitchUUID != "sw-a" || del.PortUUID != "lp-1" {
		t.Errorf("deleted %+v, want sw-a/lp-1", del)
	}
}

func TestDeletePortAmbiguousPlacement(t *testing.T) {
	fake := &fakeController{
		ports: []nvp.LogicalPort{
			portOnSwitch("lp-1", "sw-a"),
			portOnSwitch("lp-2", "sw-b"),
		},
	}
	d := newTestDriver(fake, 0)

	err := d.DeletePort(context.Background(), "port-1", "")

	var ambiguous *AmbiguousPortError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("got error %v, want AmbiguousPortError", err)
	}
	if ambiguous.Switches != 2 {
		t.Errorf("error reports %d switches, want 2", ambiguous.Switches)
	}
	if len(fake.deletedPorts) != 0 {
		t.Errorf("ambiguous placement must not delete, got %d deletions", len(fake.deletedPorts))
	}
}

func TestDeletePortNotFound(t *testing.T) {
	fake := &fakeController{}
	d := newTestDriver(fake, 0)

	err := d.DeletePort(context.Background(), "port-1", "")

	var ambiguous *AmbiguousPortError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("got error %v, want AmbiguousPortError", err)
	}
	if ambiguous.Switches != 0 {
		t.Errorf("error reports %d switches, want 0", ambiguous.Switches)
	}
}
