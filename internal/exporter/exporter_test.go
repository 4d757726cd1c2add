package exporter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/regblockgen/internal/decode"
	"github.com/retroenv/regblockgen/internal/model"
	"github.com/retroenv/retrogolib/assert"
)

func testTop() *model.Node {
	top := model.New("top", model.KindAddrmap, 0)
	top.AddChild(model.New("ctrl", model.KindReg, 0))

	arr := model.New("arr", model.KindReg, 0x10)
	arr.ArrayDimensions = []int{2}
	arr.ArrayStride = 4
	top.AddChild(arr)
	return top
}

func TestGenerate(t *testing.T) {
	data, err := New("1.0.0").Generate(testTop())
	assert.NoError(t, err)

	want := `// Address decode logic generated by regblockgen 1.0.0
// Top component: top

typedef struct {
    logic ctrl;
    logic arr[2];
} decoded_reg_strb_t;

always_comb begin
    decoded_reg_strb.ctrl = cpuif_req_masked & (cpuif_addr == 'h0);
    for(int i0=0; i0<2; i0++) begin
        decoded_reg_strb.arr[i0] = cpuif_req_masked & (cpuif_addr == 'h10 + i0*'h4);
    end
end
`
	assert.Equal(t, want, string(data))
}

func TestExportWritesNothingOnError(t *testing.T) {
	top := model.New("top", model.KindAddrmap, 0)

	buf := &bytes.Buffer{}
	err := New("dev").Export(buf, top)

	assert.True(t, errors.Is(err, decode.ErrEmptyModel))
	assert.Equal(t, 0, buf.Len())
}

func TestExport(t *testing.T) {
	buf := &bytes.Buffer{}
	err := New("dev").Export(buf, testTop())

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "decoded_reg_strb_t")
}
