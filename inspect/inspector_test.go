package inspect_test

import (
	"testing"

	"github.com/Daniel-Alievsky/algart-sub004/array"
	"github.com/Daniel-Alievsky/algart-sub004/inspect"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkDemoArray(t *testing.T) array.Array {
	t.Helper()
	a := array.NewNumericArray[int32](kind.I32, 10, false)
	for i := int64(0); i < 10; i++ {
		require.NoError(t, a.Set(i, int32(i)))
	}
	return a
}

func TestExecuteCommandSum(t *testing.T) {
	in := inspect.NewInspector(mkDemoArray(t), nil, nil)
	require.NoError(t, in.ExecuteCommand("sum"))
	assert.Contains(t, in.ConsoleView.GetText(true), "sum = 45")
}

func TestExecuteCommandRange(t *testing.T) {
	in := inspect.NewInspector(mkDemoArray(t), nil, nil)
	require.NoError(t, in.ExecuteCommand("range"))
	text := in.ConsoleView.GetText(true)
	assert.Contains(t, text, "min=0")
	assert.Contains(t, text, "max=9")
}

func TestExecuteCommandHistogram(t *testing.T) {
	in := inspect.NewInspector(mkDemoArray(t), nil, nil)
	require.NoError(t, in.ExecuteCommand("hist 5"))
	assert.Contains(t, in.ConsoleView.GetText(true), "histogram")
}

func TestExecuteCommandPage(t *testing.T) {
	in := inspect.NewInspector(mkDemoArray(t), nil, nil)
	require.NoError(t, in.ExecuteCommand("page 2"))
}

func TestExecuteCommandPageRequiresArg(t *testing.T) {
	in := inspect.NewInspector(mkDemoArray(t), nil, nil)
	assert.Error(t, in.ExecuteCommand("page"))
}

func TestExecuteCommandUnknown(t *testing.T) {
	in := inspect.NewInspector(mkDemoArray(t), nil, nil)
	assert.Error(t, in.ExecuteCommand("frobnicate"))
}

func TestExecuteCommandEmptyIsNoop(t *testing.T) {
	in := inspect.NewInspector(mkDemoArray(t), nil, nil)
	assert.NoError(t, in.ExecuteCommand(""))
}
