package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"payproof/internal/paydoc"
	"payproof/internal/port"
	"payproof/mocks"
)

func TestTableAdapterLatticeFirst(t *testing.T) {
	engine := new(mocks.MockTableEngine)
	engine.On("DetectTables", mock.Anything, "a.pdf", port.StrategyLattice).
		Return([]port.Table{{Accuracy: 92, Rows: [][]string{{"Gross Pay", "$4,500.00"}}}}, nil)

	result := NewTableAdapter(engine).Extract(context.Background(), "a.pdf", paydoc.DocTypePaystub)

	assert.Equal(t, "lattice", result.Method)
	require.Len(t, result.Tables, 1)
	assert.Equal(t, []float64{4500}, result.Fields.DetectedAmounts)
	engine.AssertNotCalled(t, "DetectTables", mock.Anything, "a.pdf", port.StrategyStream)
}

func TestTableAdapterFallsBackToStream(t *testing.T) {
	engine := new(mocks.MockTableEngine)
	engine.On("DetectTables", mock.Anything, "a.pdf", port.StrategyLattice).
		Return([]port.Table{}, nil)
	engine.On("DetectTables", mock.Anything, "a.pdf", port.StrategyStream).
		Return([]port.Table{{Rows: [][]string{{"Net Pay", "3,200.00"}}}}, nil)

	result := NewTableAdapter(engine).Extract(context.Background(), "a.pdf", paydoc.DocTypePaystub)

	assert.Equal(t, "stream", result.Method)
	require.Len(t, result.Tables, 1)
}

func TestTableAdapterStrategyErrorIsNotFatal(t *testing.T) {
	engine := new(mocks.MockTableEngine)
	engine.On("DetectTables", mock.Anything, "a.pdf", port.StrategyLattice).
		Return(nil, errors.New("engine timeout"))
	engine.On("DetectTables", mock.Anything, "a.pdf", port.StrategyStream).
		Return([]port.Table{{Rows: [][]string{{"Gross", "900.00"}}}}, nil)

	result := NewTableAdapter(engine).Extract(context.Background(), "a.pdf", paydoc.DocTypePaystub)

	assert.Equal(t, "stream", result.Method)
}

func TestTableAdapterAllStrategiesFail(t *testing.T) {
	engine := new(mocks.MockTableEngine)
	engine.On("DetectTables", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("engine down"))

	result := NewTableAdapter(engine).Extract(context.Background(), "a.pdf", paydoc.DocTypePaystub)

	assert.Equal(t, MethodFailed, result.Method)
	assert.Empty(t, result.Tables)
	assert.True(t, result.Fields.Empty())
}

func TestTableAdapterMergesFieldsAcrossTables(t *testing.T) {
	engine := new(mocks.MockTableEngine)
	engine.On("DetectTables", mock.Anything, "a.pdf", port.StrategyLattice).
		Return([]port.Table{
			{Rows: [][]string{{"Acme Widgets Inc"}, {"Regular", "$1,000.00"}}},
			{Rows: [][]string{{"Overtime", "$250.00"}}},
		}, nil)

	result := NewTableAdapter(engine).Extract(context.Background(), "a.pdf", paydoc.DocTypePaystub)

	assert.Equal(t, "Acme Widgets Inc", result.Fields.CompanyName)
	assert.Equal(t, []float64{1000, 250}, result.Fields.DetectedAmounts)
}

func TestTextAdapterConcatenatesPages(t *testing.T) {
	engine := new(mocks.MockTextEngine)
	engine.On("ReadText", mock.Anything, "a.pdf").
		Return([]port.PageText{
			{PageNumber: 1, Text: "Acme Widgets Inc\nGross Pay $4,500.00"},
			{PageNumber: 2, Text: "Net Pay $3,200.00"},
		}, nil)

	result := NewTextAdapter(engine).Extract(context.Background(), "a.pdf", paydoc.DocTypePaystub)

	assert.Equal(t, MethodText, result.Method)
	assert.Contains(t, result.FullText, "Gross Pay $4,500.00")
	assert.Contains(t, result.FullText, "Net Pay $3,200.00")
	assert.Equal(t, []float64{4500, 3200}, result.Fields.DetectedAmounts)
}

func TestTextAdapterEngineFailure(t *testing.T) {
	engine := new(mocks.MockTextEngine)
	engine.On("ReadText", mock.Anything, "a.pdf").
		Return(nil, errors.New("engine down"))

	result := NewTextAdapter(engine).Extract(context.Background(), "a.pdf", paydoc.DocTypePaystub)

	assert.Equal(t, MethodFailed, result.Method)
	assert.Empty(t, result.FullText)
}
