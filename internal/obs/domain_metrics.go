package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters live on the default registry so feature packages can
// increment them without threading a registry through every constructor.
var (
	// OrdersCreatedTotal counts orders accepted through the storefront.
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "props",
		Name:      "orders_created_total",
		Help:      "Total number of orders accepted.",
	})
	// InvoicesGeneratedTotal counts invoice PDF generation outcomes.
	InvoicesGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "props",
		Name:      "invoices_generated_total",
		Help:      "Count of invoice PDF generations by outcome.",
	}, []string{"result"})
	// CatalogImportsTotal counts whole-catalog import attempts by outcome.
	CatalogImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "props",
		Name:      "catalog_imports_total",
		Help:      "Count of catalog snapshot imports by outcome.",
	}, []string{"result"})
	// EmailDeliveriesTotal counts order-confirmation email delivery outcomes.
	EmailDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "props",
		Name:      "email_deliveries_total",
		Help:      "Count of outbound email delivery outcomes.",
	}, []string{"result"})
	// PrintNotificationsTotal counts print job sheets produced for the workshop.
	PrintNotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "props",
		Name:      "print_notifications_total",
		Help:      "Total number of print job sheets rendered.",
	})
)
