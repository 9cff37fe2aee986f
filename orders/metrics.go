package orders

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine counters. These are incremented after commit only, never inside an
// attempt body, so transparent retries do not double-count.
var (
	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loomkids_orders_created_total",
		Help: "Orders committed with their stock decrements.",
	})
	ordersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loomkids_orders_deleted_total",
		Help: "Orders deleted with their compensating restock.",
	})
	stockRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loomkids_stock_rejections_total",
		Help: "Create attempts rejected for insufficient stock.",
	})
	txConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loomkids_transaction_conflicts_total",
		Help: "Transactions abandoned after the backend retry budget.",
	})
)
