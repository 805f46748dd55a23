package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ticketsSold = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_tickets_sold",
			Help: "Tickets sold per event, refreshed by the stats sweeper.",
		},
		[]string{"event"},
	)

	ticketsCheckedIn = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_tickets_checked_in",
			Help: "Tickets checked in per event, refreshed by the stats sweeper.",
		},
		[]string{"event"},
	)
)

func init() {
	register(ticketsSold, ticketsCheckedIn)
}

func SetEventCounts(eventID string, sold, checkedIn int) {
	ticketsSold.WithLabelValues(eventID).Set(float64(sold))
	ticketsCheckedIn.WithLabelValues(eventID).Set(float64(checkedIn))
}
