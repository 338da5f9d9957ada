package metrics

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordCycle(string, float64)           {}
func (Nop) RecordStage(string, int)               {}
func (Nop) RecordRequest(string, string, float64) {}
func (Nop) RecordRetry(string)                    {}
func (Nop) RecordError(string)                    {}
func (Nop) RecordSinkPublish(string, string)      {}
func (Nop) RecordLatency(string, float64)         {}
