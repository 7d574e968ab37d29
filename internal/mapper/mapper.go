// Package mapper converts between the representations of the same data
// (persistence records, domain models and API responses).
package mapper

import "errors"

var (
	ErrNoInputMapping = errors.New("mapper: no input mapping defined")
	ErrLengthMismatch = errors.New("mapper: input lists differ in length")
)

// Mapper converts In to Out and, when an input mapping exists, back.
//
// CustomOutput and CustomInput override the default functions given to New.
type Mapper[In, Out any] struct {
	CustomOutput func(In) Out
	CustomInput  func(Out) In

	defaultOutput func(In) Out
	defaultInput  func(Out) In
}

// New returns a Mapper with the given default conversions. toInput may be
// nil for one-way mappers.
func New[In, Out any](toOutput func(In) Out, toInput func(Out) In) *Mapper[In, Out] {
	if toOutput == nil {
		panic("mapper: nil output mapping")
	}
	return &Mapper[In, Out]{
		defaultOutput: toOutput,
		defaultInput:  toInput,
	}
}

func (m *Mapper[In, Out]) ToOutput(in In) Out {
	if m.CustomOutput != nil {
		return m.CustomOutput(in)
	}
	return m.defaultOutput(in)
}

// ToInput panics with ErrNoInputMapping when neither a custom nor a default
// input mapping is set.
func (m *Mapper[In, Out]) ToInput(out Out) In {
	if m.CustomInput != nil {
		return m.CustomInput(out)
	}
	if m.defaultInput == nil {
		panic(ErrNoInputMapping)
	}
	return m.defaultInput(out)
}

// ToOutputs maps every element. A nil list yields nil.
func (m *Mapper[In, Out]) ToOutputs(ins []In) []Out {
	if ins == nil {
		return nil
	}
	outs := make([]Out, 0, len(ins))
	for _, in := range ins {
		outs = append(outs, m.ToOutput(in))
	}
	return outs
}

// ToInputs maps every element back. A nil list yields nil.
func (m *Mapper[In, Out]) ToInputs(outs []Out) []In {
	if outs == nil {
		return nil
	}
	ins := make([]In, 0, len(outs))
	for _, out := range outs {
		ins = append(ins, m.ToInput(out))
	}
	return ins
}
