package decode

import (
	"errors"
	"testing"

	"github.com/retroenv/regblockgen/internal/model"
	"github.com/retroenv/retrogolib/assert"
)

func newReg(name string, address uint64) *model.Node {
	return model.New(name, model.KindReg, address)
}

func newMem(name string, address, entries, width uint64) *model.Node {
	mem := model.New(name, model.KindMem, address)
	mem.Properties = map[string]uint64{
		model.PropertyMemEntries: entries,
		model.PropertyMemWidth:   width,
	}
	return mem
}

func TestImplementationPlainRegister(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	top.AddChild(newReg("ctrl", 0x8))

	got, err := New(top).Implementation()

	assert.NoError(t, err)
	assert.Equal(t, "decoded_reg_strb.ctrl = cpuif_req_masked & (cpuif_addr == 'h8);", got)
}

func TestImplementationRootRelativeOffset(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0x1000)
	top.AddChild(newReg("ctrl", 0x1008))

	got, err := New(top).Implementation()

	assert.NoError(t, err)
	assert.Equal(t, "decoded_reg_strb.ctrl = cpuif_req_masked & (cpuif_addr == 'h8);", got)
}

func TestImplementationPlainMemory(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	top.AddChild(newMem("buf", 0x100, 4, 32))

	got, err := New(top).Implementation()

	assert.NoError(t, err)
	assert.Equal(t,
		"decoded_reg_strb.buf = cpuif_req_masked & (cpuif_addr >= ('h100)) & (cpuif_addr < ('h110));",
		got)
}

func TestImplementationMemoryWidthRoundsUp(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	top.AddChild(newMem("buf", 0x100, 1, 9))

	got, err := New(top).Implementation()

	// 9 bit entries occupy 2 bytes each
	assert.NoError(t, err)
	assert.Equal(t,
		"decoded_reg_strb.buf = cpuif_req_masked & (cpuif_addr >= ('h100)) & (cpuif_addr < ('h102));",
		got)
}

func TestImplementationRegisterArray(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	arr := newReg("arr", 0)
	arr.ArrayDimensions = []int{2, 3}
	arr.ArrayStride = 4
	top.AddChild(arr)

	got, err := New(top).Implementation()

	assert.NoError(t, err)
	// outer index uses the derived stride 12, inner index the array stride 4
	want := `for(int i0=0; i0<2; i0++) begin
    for(int i1=0; i1<3; i1++) begin
        decoded_reg_strb.arr[i0][i1] = cpuif_req_masked & (cpuif_addr == 'h0 + i0*'hc + i1*'h4);
    end
end`
	assert.Equal(t, want, got)
}

func TestImplementationNestedContainerArray(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	blk := model.New("blk", model.KindRegfile, 0x100)
	blk.ArrayDimensions = []int{4}
	blk.ArrayStride = 0x10
	top.AddChild(blk)
	blk.AddChild(newReg("r", 0x100))

	got, err := New(top).Implementation()

	assert.NoError(t, err)
	want := `for(int i0=0; i0<4; i0++) begin
    decoded_reg_strb.blk[i0].r = cpuif_req_masked & (cpuif_addr == 'h100 + i0*'h10);
end`
	assert.Equal(t, want, got)
}

func TestImplementationMemoryArraySharesAncestorTerms(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	group := model.New("group", model.KindRegfile, 0)
	group.ArrayDimensions = []int{2}
	group.ArrayStride = 0x100
	top.AddChild(group)

	mem := newMem("buf", 0, 4, 32)
	mem.ArrayDimensions = []int{2}
	mem.ArrayStride = 0x20
	group.AddChild(mem)

	got, err := New(top).Implementation()

	assert.NoError(t, err)
	// both bounds carry the ancestor term i0 and the memory's own term i1
	want := `for(int i0=0; i0<2; i0++) begin
    for(int i1=0; i1<2; i1++) begin
        decoded_reg_strb.group[i0].buf[i1] = cpuif_req_masked & (cpuif_addr >= ('h0 + i0*'h100 + i1*'h20)) & (cpuif_addr < ('h10 + i0*'h100 + i1*'h20));
    end
end`
	assert.Equal(t, want, got)
}

func TestImplementationEmptyContainerEmitsNoLoop(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	empty := model.New("empty", model.KindRegfile, 0x200)
	empty.ArrayDimensions = []int{8}
	empty.ArrayStride = 0x10
	top.AddChild(empty)
	top.AddChild(newReg("ctrl", 0))

	got, err := New(top).Implementation()

	assert.NoError(t, err)
	assert.Equal(t, "decoded_reg_strb.ctrl = cpuif_req_masked & (cpuif_addr == 'h0);", got)
}

func TestImplementationEmptyModel(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	top.AddChild(model.New("empty", model.KindRegfile, 0))

	_, err := New(top).Implementation()

	assert.True(t, errors.Is(err, ErrEmptyModel))
}

func TestImplementationMissingMemoryProperty(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	mem := model.New("buf", model.KindMem, 0x100)
	mem.Properties = map[string]uint64{model.PropertyMemEntries: 4}
	top.AddChild(mem)

	_, err := New(top).Implementation()

	var missingErr *model.MissingPropertyError
	assert.True(t, errors.As(err, &missingErr))
	assert.Equal(t, model.PropertyMemWidth, missingErr.Property)
}

func TestImplementationDeterministic(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	top.AddChild(newReg("ctrl", 0))
	arr := newReg("arr", 0x10)
	arr.ArrayDimensions = []int{2}
	arr.ArrayStride = 4
	top.AddChild(arr)
	top.AddChild(newMem("buf", 0x100, 4, 32))

	dec := New(top)
	first, err := dec.Implementation()
	assert.NoError(t, err)
	second, err := dec.Implementation()
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStrobeStruct(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	top.AddChild(newReg("ctrl", 0))
	arr := newReg("arr", 0x10)
	arr.ArrayDimensions = []int{2, 3}
	arr.ArrayStride = 4
	top.AddChild(arr)
	blk := model.New("blk", model.KindRegfile, 0x100)
	blk.ArrayDimensions = []int{4}
	blk.ArrayStride = 0x10
	top.AddChild(blk)
	blk.AddChild(newMem("buf", 0x100, 4, 32))

	got, err := New(top).StrobeStruct()

	assert.NoError(t, err)
	want := `typedef struct {
    logic ctrl;
    logic arr[2][3];
    struct {
        logic buf;
    } blk[4];
} decoded_reg_strb_t;`
	assert.Equal(t, want, got)
}

func TestStrobeStructEmptyModel(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	top.AddChild(model.New("empty", model.KindRegfile, 0))

	_, err := New(top).StrobeStruct()

	assert.True(t, errors.Is(err, ErrEmptyModel))
}

func TestAccessStrobe(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)
	reg := newReg("ctrl", 0)
	top.AddChild(reg)
	field := model.New("enable", model.KindField, 0)
	reg.AddChild(field)

	dec := New(top)

	assert.Equal(t, "decoded_reg_strb.ctrl", dec.AccessStrobe(reg))
	assert.Equal(t, "decoded_reg_strb.ctrl", dec.AccessStrobe(field))
	assert.Equal(t, "ctrl", dec.Access(reg))
	assert.Equal(t, "ctrl", dec.Access(field))
}
