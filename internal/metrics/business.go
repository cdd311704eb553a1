package metrics

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementCardCreated increments card creation counter
func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardCreatedTotal.Inc()
	})
}

// IncrementReactionAdded increments reaction upsert counter
func (m *Metrics) IncrementReactionAdded() {
	m.safeExecute("IncrementReactionAdded", func() {
		m.ReactionAddedTotal.Inc()
	})
}

// RecordSummary counts an AI summary request by result ("ok" or "error")
func (m *Metrics) RecordSummary(result string) {
	m.safeExecute("RecordSummary", func() {
		m.SummaryRequestsTotal.WithLabelValues(result).Inc()
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}
