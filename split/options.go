package split

// Option is a function that configures HoldoutSplitter
type Option func(*HoldoutSplitter)

// WithHoldoutSize sets the total size of the held-out partition
func WithHoldoutSize(n int) Option {
	return func(s *HoldoutSplitter) {
		s.holdoutSize = n
	}
}

// WithTopExclude sets how many top-ranked rows are excluded from the great pool
func WithTopExclude(n int) Option {
	return func(s *HoldoutSplitter) {
		s.topExclude = n
	}
}

// WithGreatPoolSize sets the size of the ranked pool the great rows are drawn from
func WithGreatPoolSize(n int) Option {
	return func(s *HoldoutSplitter) {
		s.greatPoolSize = n
	}
}

// WithGreatCount sets how many great rows are sampled from the pool
func WithGreatCount(n int) Option {
	return func(s *HoldoutSplitter) {
		s.greatCount = n
	}
}
