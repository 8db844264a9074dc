package domain

// Filter selects rooms for Find. Nil fields impose no constraint; supplied
// fields are combined conjunctively.
type Filter struct {
	Building    *string
	MinCapacity *int
	Hour        *int
}

// FilterOption sets one criterion on a Filter.
type FilterOption func(*Filter)

// InBuilding restricts matches to rooms whose building equals name exactly.
func InBuilding(name string) FilterOption {
	return func(f *Filter) { f.Building = &name }
}

// WithMinCapacity restricts matches to rooms holding at least n people.
func WithMinCapacity(n int) FilterOption {
	return func(f *Filter) { f.MinCapacity = &n }
}

// FreeAt restricts matches to rooms not booked at hour.
func FreeAt(hour int) FilterOption {
	return func(f *Filter) { f.Hour = &hour }
}

// NewFilter builds a Filter from options.
func NewFilter(opts ...FilterOption) Filter {
	var f Filter
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Match reports whether r satisfies every supplied criterion.
func (f Filter) Match(r Room) bool {
	if f.Building != nil && r.Building != *f.Building {
		return false
	}
	if f.MinCapacity != nil && r.Capacity < *f.MinCapacity {
		return false
	}
	if f.Hour != nil && !r.IsFree(*f.Hour) {
		return false
	}
	return true
}
