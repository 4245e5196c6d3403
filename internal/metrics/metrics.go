package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_orders_created_total",
		Help: "Total number of orders successfully placed.",
	})

	OrderFieldChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_order_field_changes_total",
		Help: "Effective order field changes applied by staff patches.",
	},
		[]string{"field"},
	)

	PatchRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_patch_rejections_total",
		Help: "Staff patches rejected before any write, by reason.",
	},
		[]string{"reason"},
	)

	FeedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_feed_requests_total",
		Help: "Tracking feed reads by view.",
	},
		[]string{"view"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	OrderCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fulfillment_order_cache_items",
		Help: "Current number of active orders held in the order cache.",
	})

	OutboxTasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_outbox_tasks_total",
		Help: "Outbox tasks handed to the event producer, by result.",
	},
		[]string{"result"},
	)

	StreamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fulfillment_stream_subscribers",
		Help: "Open staff websocket feed connections.",
	})
)
