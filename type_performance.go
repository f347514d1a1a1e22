package rebalance

// Performance holds the starting and ending value of a period.
type Performance struct {
	Start, End Money
}

func NewPerformance(start, end Money) Performance {
	return Performance{
		Start: start,
		End:   end,
	}
}

// Change returns End - Start.
func (p Performance) Change() Money {
	return p.End.Sub(p.Start)
}

// Percent returns the change relative to Start, 0% when Start is zero.
func (p Performance) Percent() Percent {
	return ratio(p.Change().value, p.Start.value)
}
