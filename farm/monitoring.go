package farm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var actionsEligible = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "harvester_actions_eligible_total",
	Help: "Items found eligible for an action",
}, []string{"state"})

var actionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "harvester_actions_failed_total",
	Help: "Actions whose transaction failed",
}, []string{"state"})

var tasksSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "harvester_tasks_skipped_total",
	Help: "Tasks that had nothing to do",
}, []string{"state"})
