package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/en0/emu101/word"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for _, i := range []Instruction{
		{IO: IOWrite, AddrMode: AddrDP, Compute: ComputeOutD0, Source: SourceZero, Dest: DestN2, Cond: CondTrue},
		{IO: IORead, AddrMode: AddrSP, Compute: ComputeAddD0D1, Source: SourceImmediate, Dest: DestD1, Cond: CondGE},
		{IO: IOWrite, AddrMode: AddrSPD0, Compute: ComputeNotD2, Source: SourceALU, Dest: DestDP, Cond: CondNE},
	} {
		encoded := Encode(i)
		assert.Equal(t, i, Decode(encoded))
	}
}

func TestScenarioBOpcode(t *testing.T) {
	// dst=data, src=d0 ? true (write d0, via the ALU passthrough, at DP)
	got := Encode(Instruction{
		IO:       IOWrite,
		AddrMode: AddrDP,
		Compute:  ComputeOutD0,
		Source:   SourceZero,
		Dest:     DestN2,
		Cond:     CondTrue,
	})
	assert.Equal(t, word.Word(0x833F), got)
}

func TestEvalALU(t *testing.T) {
	regs := ALURegs{D0: 10, D1: 3, D2: 0xABCD, IP: 0xF010, SP: 0x01FE, DP: 0x0200}

	assert.Equal(t, word.Word(13), Eval(ComputeAddD0D1, regs))
	assert.Equal(t, word.Word(7), Eval(ComputeSubD0D1, regs))
	assert.Equal(t, word.Word(10), Eval(ComputeOutD0, regs))
	assert.Equal(t, word.Word(11), Eval(ComputeIncD0, regs))
	assert.Equal(t, word.Word(9), Eval(ComputeDecD0, regs))
	assert.Equal(t, word.Word(20), Eval(ComputeRollD0, regs))
	assert.Equal(t, word.Word(5), Eval(ComputeRolrD0, regs))
	assert.Equal(t, regs.IP, Eval(ComputeOutIP, regs))
	assert.Equal(t, regs.SP, Eval(ComputeOutSP, regs))
	assert.Equal(t, regs.DP, Eval(ComputeOutDP, regs))
	assert.Equal(t, word.Word(0xffff).Sub(10), Eval(ComputeNotD0, regs))
}

func TestFlagsFor(t *testing.T) {
	assert.Equal(t, FlagGT, FlagsFor(1))
	assert.Equal(t, FlagLT, FlagsFor(word.Word(0).Sub(1)))
	assert.Equal(t, FlagEQ, FlagsFor(0))
}

func TestComputeMnemonics(t *testing.T) {
	op, ok := ComputeMnemonics["add d1"]
	assert.True(t, ok)
	assert.Equal(t, ComputeAddD0D1, op)

	_, ok = ComputeMnemonics["bogus"]
	assert.False(t, ok)
}

func TestConditionMnemonics(t *testing.T) {
	assert.Equal(t, CondEQ, ConditionMnemonics["z"])
	assert.Equal(t, CondNE, ConditionMnemonics["nz"])
}
