package mapper

// DualMapper combines two inputs into one output. There is no way back.
type DualMapper[A, B, Out any] struct {
	fn func(A, B) Out
}

func NewDual[A, B, Out any](fn func(A, B) Out) *DualMapper[A, B, Out] {
	if fn == nil {
		panic("mapper: nil dual mapping")
	}
	return &DualMapper[A, B, Out]{fn: fn}
}

func (m *DualMapper[A, B, Out]) Map(a A, b B) Out {
	return m.fn(a, b)
}

// MapLists pairs as and bs by index.
func (m *DualMapper[A, B, Out]) MapLists(as []A, bs []B) ([]Out, error) {
	if len(as) != len(bs) {
		return nil, ErrLengthMismatch
	}
	outs := make([]Out, 0, len(as))
	for i := range as {
		outs = append(outs, m.fn(as[i], bs[i]))
	}
	return outs, nil
}

// SplitMapper turns one input into two outputs.
type SplitMapper[In, A, B any] struct {
	fn func(In) (A, B)
}

func NewSplit[In, A, B any](fn func(In) (A, B)) *SplitMapper[In, A, B] {
	if fn == nil {
		panic("mapper: nil split mapping")
	}
	return &SplitMapper[In, A, B]{fn: fn}
}

func (m *SplitMapper[In, A, B]) Map(in In) (A, B) {
	return m.fn(in)
}

func (m *SplitMapper[In, A, B]) MapList(ins []In) ([]A, []B) {
	as := make([]A, 0, len(ins))
	bs := make([]B, 0, len(ins))
	for _, in := range ins {
		a, b := m.fn(in)
		as = append(as, a)
		bs = append(bs, b)
	}
	return as, bs
}
