package metrics

// RecordBroadcast counts one publish of event with its outcome
func (m *Metrics) RecordBroadcast(event, outcome string) {
	m.safeExecute("RecordBroadcast", func() {
		m.BroadcastEventsTotal.WithLabelValues(event, outcome).Inc()
	})
}

// RecordTransportError counts a failed publish attempt on one transport
func (m *Metrics) RecordTransportError(transport string) {
	m.safeExecute("RecordTransportError", func() {
		m.TransportErrorsTotal.WithLabelValues(transport).Inc()
	})
}

// StreamOpened increments the open stream gauge
func (m *Metrics) StreamOpened() {
	m.safeExecute("StreamOpened", func() {
		m.StreamConnectionsOpen.Inc()
	})
}

// StreamClosed decrements the open stream gauge
func (m *Metrics) StreamClosed() {
	m.safeExecute("StreamClosed", func() {
		m.StreamConnectionsOpen.Dec()
	})
}
