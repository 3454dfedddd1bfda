package intent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ruleMatchesTotal counts resolved turns by the rule that produced the reply
	ruleMatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_rule_matches_total",
		Help: "Resolved user turns by matching rule",
	}, []string{"rule"})

	// selectionsTotal counts numbered selection attempts by outcome
	selectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_selections_total",
		Help: "Numbered selection attempts by result",
	}, []string{"result"})

	// quickActionsTotal counts quick actions by category
	quickActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_quick_actions_total",
		Help: "Quick actions dispatched by category",
	}, []string{"category"})
)
