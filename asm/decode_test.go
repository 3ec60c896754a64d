package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en0/emu101/isa"
	"github.com/en0/emu101/word"
)

func TestDecodeOpSpecialForms(t *testing.T) {
	for _, tc := range []struct {
		op   string
		want word.Word
	}{
		{"hlt", isa.OpHalt},
		{"nop", isa.OpNop},
		{"noop", isa.OpNop},
		{"brk", isa.OpBreak},
	} {
		e, err := decodeOp(tc.op)
		require.NoError(t, err)
		assert.Equal(t, tc.want, e.Opcode)
		assert.False(t, e.HasImmediate)
	}
}

func TestDecodeOpRegisterToRegister(t *testing.T) {
	e, err := decodeOp("d0=d1")
	require.NoError(t, err)
	want := isa.Encode(isa.Instruction{IO: isa.IORead, AddrMode: isa.AddrDP, Compute: isa.ComputeOutD1, Source: isa.SourceALU, Dest: isa.DestD0, Cond: isa.CondTrue})
	assert.Equal(t, want, e.Opcode)
	assert.False(t, e.HasImmediate)
}

func TestDecodeOpImmediateHex(t *testing.T) {
	e, err := decodeOp("dp=!0xabcd")
	require.NoError(t, err)
	want := isa.Encode(isa.Instruction{IO: isa.IORead, AddrMode: isa.AddrDP, Compute: 0, Source: isa.SourceImmediate, Dest: isa.DestDP, Cond: isa.CondTrue})
	assert.Equal(t, want, e.Opcode)
	require.True(t, e.HasImmediate)
	assert.Equal(t, word.Word(0xabcd), e.ImmediateLiteral)
}

func TestDecodeOpImmediateBinaryAndDecimal(t *testing.T) {
	e, err := decodeOp("d0=!0b101")
	require.NoError(t, err)
	assert.Equal(t, word.Word(0b101), e.ImmediateLiteral)

	e, err = decodeOp("d0=!42")
	require.NoError(t, err)
	assert.Equal(t, word.Word(42), e.ImmediateLiteral)
}

func TestDecodeOpMemoryWriteDataAlone(t *testing.T) {
	e, err := decodeOp("data=d0")
	require.NoError(t, err)
	want := isa.Encode(isa.Instruction{IO: isa.IOWrite, AddrMode: isa.AddrDP, Compute: isa.ComputeOutD0, Source: isa.SourceALU, Dest: isa.DestN1, Cond: isa.CondTrue})
	assert.Equal(t, want, e.Opcode)
}

func TestDecodeOpMemoryWriteWithRegisterLoad(t *testing.T) {
	e, err := decodeOp("d1,data=d0")
	require.NoError(t, err)
	want := isa.Encode(isa.Instruction{IO: isa.IOWrite, AddrMode: isa.AddrDP, Compute: isa.ComputeOutD0, Source: isa.SourceALU, Dest: isa.DestD1, Cond: isa.CondTrue})
	assert.Equal(t, want, e.Opcode)

	// order of the two destinations does not matter
	e2, err := decodeOp("data,d1=d0")
	require.NoError(t, err)
	assert.Equal(t, want, e2.Opcode)
}

func TestDecodeOpMemoryRead(t *testing.T) {
	e, err := decodeOp("d0=data")
	require.NoError(t, err)
	want := isa.Encode(isa.Instruction{IO: isa.IORead, AddrMode: isa.AddrDP, Compute: 0, Source: isa.SourceData, Dest: isa.DestD0, Cond: isa.CondTrue})
	assert.Equal(t, want, e.Opcode)
}

func TestDecodeOpDuplicateDestination(t *testing.T) {
	_, err := decodeOp("d0,d0=d1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duplicate Destination")
}

func TestDecodeOpAmbiguousDestination(t *testing.T) {
	_, err := decodeOp("d0,d1=d2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown Destination")
}

func TestDecodeOpUnknownMnemonic(t *testing.T) {
	_, err := decodeOp("d0=bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown Source or Computation")
}

func TestDecodeOpCondition(t *testing.T) {
	e, err := decodeOp("d0=d1?lt")
	require.NoError(t, err)
	want := isa.Encode(isa.Instruction{IO: isa.IORead, AddrMode: isa.AddrDP, Compute: isa.ComputeOutD1, Source: isa.SourceALU, Dest: isa.DestD0, Cond: isa.CondLT})
	assert.Equal(t, want, e.Opcode)
}

func TestDecodeOpConditionWithIndependentCompute(t *testing.T) {
	e, err := decodeOp("d0=data?lt,sub d1")
	require.NoError(t, err)
	want := isa.Encode(isa.Instruction{IO: isa.IORead, AddrMode: isa.AddrDP, Compute: isa.ComputeSubD0D1, Source: isa.SourceData, Dest: isa.DestD0, Cond: isa.CondLT})
	assert.Equal(t, want, e.Opcode)
}

func TestDecodeOpUnknownCondition(t *testing.T) {
	_, err := decodeOp("d0=d1?bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown Conditional")
}

func TestDecodeOpUnknownConditionSource(t *testing.T) {
	_, err := decodeOp("d0=d1?lt,bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown Source or Computation in Conditional")
}

func TestDecodeOpLabelReference(t *testing.T) {
	e, err := decodeOp("ip=@loop")
	require.NoError(t, err)
	assert.True(t, e.HasImmediate)
	assert.Equal(t, "loop", e.ImmediateLabel)
}

func TestDecodeOpSyntaxError(t *testing.T) {
	_, err := decodeOp("this is not an instruction")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Syntax Error")
}
