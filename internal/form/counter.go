package form

// Counter is a bounded numeric field with decrement/increment controls.
//
// The lower bound is always 1. Listeners registered with OnChange run after
// every change of the value made through the controls or Set.
type Counter struct {
	value     int
	max       int
	listeners []func(int)
}

// NewCounter creates a counter with the given value and maximum.
func NewCounter(value, max int) *Counter {
	if max < 1 {
		max = 1
	}
	c := &Counter{max: max}
	c.value = c.clamp(value)
	return c
}

// Value returns the current value.
func (c *Counter) Value() int { return c.value }

// Max returns the configured maximum.
func (c *Counter) Max() int { return c.max }

// OnChange registers a listener called with the new value after each change.
func (c *Counter) OnChange(fn func(int)) {
	c.listeners = append(c.listeners, fn)
}

// Decrement lowers the value by one if it is above 1. It reports whether the
// value changed.
func (c *Counter) Decrement() bool {
	if c.value <= 1 {
		return false
	}
	c.value--
	c.notify()
	return true
}

// Increment raises the value by one if it is below the maximum. It reports
// whether the value changed.
func (c *Counter) Increment() bool {
	if c.value >= c.max {
		return false
	}
	c.value++
	c.notify()
	return true
}

// Set stores v clamped to [1, max]. Listeners run only if the stored value
// changed.
func (c *Counter) Set(v int) {
	v = c.clamp(v)
	if v == c.value {
		return
	}
	c.value = v
	c.notify()
}

// SetMax changes the maximum without touching the value.
func (c *Counter) SetMax(max int) {
	if max < 1 {
		max = 1
	}
	c.max = max
}

func (c *Counter) clamp(v int) int {
	if v < 1 {
		return 1
	}
	if v > c.max {
		return c.max
	}
	return v
}

func (c *Counter) notify() {
	for _, fn := range c.listeners {
		fn(c.value)
	}
}
