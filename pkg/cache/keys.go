package cache

// Keyer builds cache keys.
type Keyer interface {
	// TraceKey identifies the trace of one engine run over one input.
	TraceKey(engine, algorithm string, input TraceInput) string
}

// TraceInput is everything besides engine and algorithm that determines a
// trace.
type TraceInput struct {
	Values []int    `json:"values,omitempty"`
	Target *int     `json:"target,omitempty"`
	Walls  [][2]int `json:"walls,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TraceKey returns "trace:<engine>:<algorithm>:<hash of input>".
func (DefaultKeyer) TraceKey(engine, algorithm string, input TraceInput) string {
	return hashKey("trace:"+engine+":"+algorithm, input)
}

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TraceKey generates a prefixed trace key.
func (k *ScopedKeyer) TraceKey(engine, algorithm string, input TraceInput) string {
	return k.prefix + k.inner.TraceKey(engine, algorithm, input)
}
