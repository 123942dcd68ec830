// Package metrics holds the Prometheus instrumentation for the driver.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nvpd"

var (
	// SwitchesCreated counts logical switches created on the controller,
	// including switches created by capacity spanning.
	SwitchesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logical_switches_created_total",
		Help:      "Logical switches created on the controller.",
	})

	// SwitchesDeleted counts logical switches deleted on the controller.
	SwitchesDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logical_switches_deleted_total",
		Help:      "Logical switches deleted on the controller.",
	})

	// PortsCreated counts logical ports created on the controller.
	PortsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logical_ports_created_total",
		Help:      "Logical ports created on the controller.",
	})

	// PortsDeleted counts logical ports deleted on the controller.
	PortsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logical_ports_deleted_total",
		Help:      "Logical ports deleted on the controller.",
	})

	// ValidationFailures counts provider-network configurations rejected
	// before any controller mutation.
	ValidationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_validation_failures_total",
		Help:      "Provider network configurations rejected by validation.",
	})
)

// Register registers all driver metrics with the given registerer.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		SwitchesCreated,
		SwitchesDeleted,
		PortsCreated,
		PortsDeleted,
		ValidationFailures,
	)
}
