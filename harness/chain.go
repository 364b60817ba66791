package harness

import (
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/machine"
)

// Chain is a pipeline of machines running the same program, each feeding
// its output to the input of the next.
//
// In feedback mode the output of the last machine is also the input of the
// first, forming a ring.
type Chain struct {
	Harness
	Feedback bool // Set if the chain is a ring.

	queues []*io.Queue
}

// NewChain creates one machine per seed. Each machine receives its seed as
// its first input.
func NewChain(program []int64, seeds []int64, feedback bool) (chain *Chain) {
	chain = &Chain{
		Feedback: feedback,
	}

	count := len(seeds)

	chain.queues = make([]*io.Queue, count+1)
	for n := range chain.queues {
		chain.queues[n] = io.NewQueue()
	}
	if feedback && count > 0 {
		chain.queues[count] = chain.queues[0]
	}

	for n, seed := range seeds {
		chain.queues[n].Push(seed)
		chain.Add(machine.NewMachineIO(program, chain.queues[n], chain.queues[n+1]))
	}

	return
}

// Input returns the queue feeding the first machine.
func (chain *Chain) Input() *io.Queue {
	return chain.queues[0]
}

// Output returns the queue fed by the last machine.
// For a feedback chain this is the same queue as Input.
func (chain *Chain) Output() *io.Queue {
	return chain.queues[len(chain.queues)-1]
}

// Signal sends value to the first machine, runs the chain until every
// machine halts, and returns the last value output by the last machine.
func (chain *Chain) Signal(value int64) (output int64, err error) {
	if len(chain.Machines) == 0 {
		err = ErrChainEmpty
		return
	}

	chain.Input().Push(value)

	err = chain.Run()
	if err != nil {
		return
	}

	values := chain.Output().Drain()
	if len(values) == 0 {
		err = ErrNoOutput
		return
	}

	output = values[len(values)-1]

	return
}

// BestChain tries every ordering of seeds, and returns the largest signal
// produced for the input value, along with the seed ordering that produced
// it.
func BestChain(program []int64, seeds []int64, feedback bool, value int64) (best int64, order []int64, err error) {
	return BestChainLimit(program, seeds, feedback, value, 0)
}

// BestChainLimit is BestChain, with each machine limited to maxSteps
// instructions. A maxSteps of 0 is unlimited.
func BestChainLimit(program []int64, seeds []int64, feedback bool, value int64, maxSteps int) (best int64, order []int64, err error) {
	if len(seeds) == 0 {
		err = ErrChainEmpty
		return
	}

	for perm := range internal.Permutations(seeds) {
		chain := NewChain(program, perm, feedback)
		chain.MaxSteps = maxSteps

		var output int64
		output, err = chain.Signal(value)
		if err != nil {
			return
		}
		if order == nil || output > best {
			best = output
			order = perm
		}
	}

	return
}
