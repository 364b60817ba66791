package harness

import (
	log "github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/machine"
)

const (
	NETWORK_SENTINEL    = 255 // Default address of the network controller.
	NETWORK_EMPTY       = -1  // Input value given to a machine with nothing to receive.
	NETWORK_IDLE_ROUNDS = 2   // Default number of idle rounds before the controller is consulted.
)

// Packet is an (x, y) pair sent to an address.
type Packet struct {
	Address int64
	X       int64
	Y       int64
}

// Controller receives the packets sent to the sentinel address, and
// restarts the network when it goes idle.
type Controller interface {
	// Deliver receives a packet sent to the sentinel address.
	// If done is set, the network stops.
	Deliver(packet Packet) (done bool)
	// Idle is called when every machine has been idle for IdleRounds.
	// If ok is set, the packet is sent to machine 0.
	// If done is set, the network stops.
	Idle() (packet Packet, ok bool, done bool)
}

// Network is a set of machines that exchange addressed packets.
//
// Each machine is told its address as its first input. A machine sends a
// packet by outputting the destination address, X, and Y. A machine that
// asks for input while nothing has been sent to it receives NETWORK_EMPTY.
type Network struct {
	Harness
	Sentinel   int64      // Address of the controller.
	IdleRounds int        // Idle rounds before the controller is consulted.
	Controller Controller // Controller, or nil to stop at the first sentinel packet.
	Last       Packet     // Last packet sent to the sentinel address.

	pending [][]int64
	idle    int
}

// NewNetwork creates count machines running program, with addresses
// 0 through count-1.
func NewNetwork(program []int64, count int, controller Controller) (network *Network) {
	network = &Network{
		Sentinel:   NETWORK_SENTINEL,
		IdleRounds: NETWORK_IDLE_ROUNDS,
		Controller: controller,
		pending:    make([][]int64, count),
	}

	for address := range count {
		m := machine.NewMachine(program)
		m.Input.Push(int64(address))
		network.Add(m)
	}

	return
}

// route delivers a packet to its destination.
func (network *Network) route(packet Packet) (done bool, err error) {
	if network.Verbose {
		log.Debugf("network: packet %+v", packet)
	}

	switch {
	case packet.Address == network.Sentinel:
		network.Last = packet
		if network.Controller == nil {
			done = true
			return
		}
		done = network.Controller.Deliver(packet)
	case packet.Address >= 0 && packet.Address < int64(len(network.Machines)):
		network.Machines[packet.Address].Input.Push(packet.X, packet.Y)
	default:
		err = ErrAddress(packet.Address)
	}

	return
}

// Round steps every machine once, and routes every complete packet it
// sends. Idle is set if every running machine asked for input that was not
// there and sent nothing.
func (network *Network) Round() (idle bool, done bool, err error) {
	idle = true

	for index, m := range network.Machines {
		if network.Status[index] == machine.STATUS_HALTED {
			continue
		}

		hungry := m.Input.Empty()
		if hungry {
			m.Input.Push(NETWORK_EMPTY)
		}

		_, err = network.Step(index)
		if err != nil {
			return
		}

		output := m.Output.Drain()
		if !hungry || len(output) > 0 {
			idle = false
		}

		pending := append(network.pending[index], output...)
		for len(pending) >= 3 {
			packet := Packet{Address: pending[0], X: pending[1], Y: pending[2]}
			pending = pending[3:]
			done, err = network.route(packet)
			if err != nil {
				err = &ErrMachine{Index: index, Err: err}
				return
			}
			if done {
				network.pending[index] = pending
				return
			}
		}
		network.pending[index] = pending
	}

	return
}

// Run executes rounds until the controller stops the network, or every
// machine has halted.
func (network *Network) Run() (err error) {
	network.idle = 0

	for !network.Halted() {
		var idle, done bool
		idle, done, err = network.Round()
		if err != nil || done {
			return
		}

		if !idle {
			network.idle = 0
			continue
		}

		network.idle++
		if network.idle < network.IdleRounds {
			continue
		}
		network.idle = 0

		if network.Controller == nil {
			err = ErrDeadlock
			return
		}

		packet, ok, done := network.Controller.Idle()
		if done {
			return
		}
		if !ok {
			err = ErrDeadlock
			return
		}

		if network.Verbose {
			log.Debugf("network: idle, sending %+v", packet)
		}
		network.Machines[0].Input.Push(packet.X, packet.Y)
	}

	return
}

// Nat is a network controller that remembers the last packet delivered to
// it, and sends that packet to machine 0 whenever the network is idle.
type Nat struct {
	First bool // If set, stop at the first delivered packet.

	Delivered []Packet // Packets delivered to the controller.
	Injected  []Packet // Packets sent to machine 0.
}

// Deliver records the packet.
func (nat *Nat) Deliver(packet Packet) (done bool) {
	nat.Delivered = append(nat.Delivered, packet)
	done = nat.First
	return
}

// Idle sends the last delivered packet to machine 0. The network stops
// when the same Y value would be sent twice in a row.
func (nat *Nat) Idle() (packet Packet, ok bool, done bool) {
	if len(nat.Delivered) == 0 {
		return
	}

	packet = nat.Delivered[len(nat.Delivered)-1]
	packet.Address = 0

	if len(nat.Injected) > 0 && nat.Injected[len(nat.Injected)-1].Y == packet.Y {
		done = true
	}

	nat.Injected = append(nat.Injected, packet)
	ok = true

	return
}
