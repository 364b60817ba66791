package harness

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/machine"
)

// nic forwards each packet it receives to the machine STEP addresses
// later, incrementing X. The last machine sends to the controller.
// Machine 0 starts the ring with a packet carrying Y of 42.
var nic = []string{
	"      in addr",
	"      eq addr, #0, tmp",
	"      jz tmp, #loop",
	"      out #STEP",
	"      out #0",
	"      out #42",
	"loop: in x",
	"      eq x, #-1, tmp",
	"      jnz tmp, #loop",
	"      in y",
	"      add x, #1, x",
	"      add addr, #STEP, dest",
	"      eq dest, #COUNT, tmp",
	"      jz tmp, #send",
	"      add #255, #0, dest",
	"send: out dest",
	"      out x",
	"      out y",
	"      jnz #1, #loop",
	"addr: .data 0",
	"tmp:  .data 0",
	"dest: .data 0",
	"x:    .data 0",
	"y:    .data 0",
}

func assembleNic(t *testing.T, count string, step string) (tape []int64) {
	asm := &machine.Assembler{}
	asm.Predefine("COUNT", count)
	asm.Predefine("STEP", step)

	prog, err := asm.Parse(strings.NewReader(strings.Join(nic, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	tape = prog.Tape()
	return
}

func TestNetworkFirst(t *testing.T) {
	assert := assert.New(t)

	nat := &Nat{First: true}
	network := NewNetwork(assembleNic(t, "5", "1"), 5, nat)
	assert.Equal(5, len(network.Machines))

	assert.NoError(network.Run())
	assert.Equal([]Packet{{Address: NETWORK_SENTINEL, X: 4, Y: 42}}, nat.Delivered)
	assert.Equal(0, len(nat.Injected))
	assert.Equal(Packet{Address: NETWORK_SENTINEL, X: 4, Y: 42}, network.Last)
}

func TestNetworkNat(t *testing.T) {
	assert := assert.New(t)

	nat := &Nat{}
	network := NewNetwork(assembleNic(t, "5", "1"), 5, nat)

	assert.NoError(network.Run())
	assert.Equal([]Packet{
		{Address: NETWORK_SENTINEL, X: 4, Y: 42},
		{Address: NETWORK_SENTINEL, X: 9, Y: 42},
	}, nat.Delivered)
	assert.Equal([]Packet{
		{Address: 0, X: 4, Y: 42},
		{Address: 0, X: 9, Y: 42},
	}, nat.Injected)
}

func TestNetworkNoController(t *testing.T) {
	assert := assert.New(t)

	network := NewNetwork([]int64{104, 255, 104, 3, 104, 4, 99}, 2, nil)
	assert.NoError(network.Run())
	assert.Equal(Packet{Address: NETWORK_SENTINEL, X: 3, Y: 4}, network.Last)
}

func TestNetworkHalted(t *testing.T) {
	assert := assert.New(t)

	network := NewNetwork([]int64{99}, 3, &Nat{})
	assert.NoError(network.Run())
	assert.True(network.Halted())
}

func TestNetworkErrors(t *testing.T) {
	assert := assert.New(t)

	// Packet to an address that does not exist.
	network := NewNetwork([]int64{104, 7, 104, 0, 104, 0, 99}, 2, nil)
	err := network.Run()
	assert.True(errors.Is(err, ErrAddress(7)), "%v", err)

	// Listens forever, and nothing is ever sent.
	listen := []int64{3, 10, 1105, 1, 0}

	network = NewNetwork(listen, 2, nil)
	err = network.Run()
	assert.True(errors.Is(err, ErrDeadlock), "%v", err)

	network = NewNetwork(listen, 2, &Nat{})
	err = network.Run()
	assert.True(errors.Is(err, ErrDeadlock), "%v", err)

	// A custom sentinel address.
	network = NewNetwork([]int64{104, 255, 104, 0, 104, 0, 99}, 2, nil)
	network.Sentinel = 100
	err = network.Run()
	assert.True(errors.Is(err, ErrAddress(255)), "%v", err)
}
