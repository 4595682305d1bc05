package records

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariadx/aria/internal/domain"
)

func fixtureStore() *Store {
	return NewStore([]MachineRecord{
		{
			MachineID:       "M001",
			LastMaintenance: "2026-07-14",
			OpenWorkOrders:  3,
			BearingStock:    2,
			HydraulicStock:  8,
			Status:          "critical",
		},
		{
			MachineID:       "M002",
			LastMaintenance: "2026-08-02",
			OpenWorkOrders:  1,
			BearingStock:    6,
			HydraulicStock:  4,
			Status:          "operational",
		},
	})
}

func TestMachineRecordFormat(t *testing.T) {
	rec := MachineRecord{
		MachineID:       "M001",
		LastMaintenance: "2026-07-14",
		OpenWorkOrders:  3,
		BearingStock:    2,
		HydraulicStock:  8,
		Status:          "critical",
	}

	got := rec.Format()
	assert.Equal(t,
		"Machine M001 | Last maintenance: 2026-07-14 | Open work orders: 3 | "+
			"Bearing stock: 2 | Hydraulic stock: 8 | Status: critical",
		got)
	// The labels are load-bearing for the escalation rules.
	assert.Contains(t, got, "Bearing stock: 2")
	assert.Contains(t, got, "Open work orders: 3")
}

func TestDispatchMachineHistory(t *testing.T) {
	out, err := fixtureStore().Dispatch(context.Background(), OpMachineHistory, "m001")
	require.NoError(t, err)
	assert.Contains(t, out, "Machine M001")
}

func TestDispatchMachineNotFound(t *testing.T) {
	_, err := fixtureStore().Dispatch(context.Background(), OpMachineHistory, "M999")
	assert.ErrorIs(t, err, ErrMachineNotFound)
}

func TestDispatchCriticalMachines(t *testing.T) {
	out, err := fixtureStore().Dispatch(context.Background(), OpCriticalMachines, "")
	require.NoError(t, err)
	assert.Equal(t, "critical machines: M001 (3 open orders)", out)
}

func TestDispatchUnknownOperationIsTyped(t *testing.T) {
	_, err := fixtureStore().Dispatch(context.Background(), Operation("query_sap_maintenance"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.Contains(t, err.Error(), "query_sap_maintenance")
}

func TestLookupSelectsMachineHistory(t *testing.T) {
	rc, err := fixtureStore().Lookup(context.Background(),
		"Why is machine M001 showing bearing failure with high torque?")
	require.NoError(t, err)
	assert.True(t, rc.Found)
	assert.Contains(t, rc.Data, "Bearing stock: 2")
}

func TestLookupSelectsCriticalMachines(t *testing.T) {
	rc, err := fixtureStore().Lookup(context.Background(), "Which machines are in critical status?")
	require.NoError(t, err)
	assert.True(t, rc.Found)
	assert.Contains(t, rc.Data, "critical machines: M001")
}

func TestLookupNoMatchingOperation(t *testing.T) {
	rc, err := fixtureStore().Lookup(context.Background(), "What is the torque spec for spindles?")
	require.NoError(t, err)
	assert.False(t, rc.Found)
	assert.Empty(t, rc.Data)
}

func TestLookupUnknownMachineDegradesToNotFound(t *testing.T) {
	rc, err := fixtureStore().Lookup(context.Background(), "Why did M999 stop?")
	require.NoError(t, err)
	assert.False(t, rc.Found)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maintenance.csv")
	data := "machine_id,last_maintenance,open_work_orders,bearing_stock,hydraulic_stock,status\n" +
		"M001,2026-07-14,3,2,8,critical\n" +
		"M002,2026-08-02,1,6,4,operational\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	store, err := LoadCSV(path)
	require.NoError(t, err)

	out, err := store.Dispatch(context.Background(), OpMachineHistory, "M001")
	require.NoError(t, err)
	assert.Contains(t, out, "Bearing stock: 2")
	assert.Contains(t, out, "Status: critical")
}

func TestLoadCSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("machine_id,status\nM001,ok\n"), 0o600))

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestStepRunSetsRecordContext(t *testing.T) {
	step := NewStep(fixtureStore(), nil)
	state := domain.NewWorkflowState("Why is M001 failing?")

	out, err := step.Run(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, out.RecordContext.Found)
	assert.Contains(t, out.RecordContext.Data, "Machine M001")
}

func TestStepRunDegradesOnSourceError(t *testing.T) {
	failing := SourceFunc(func(_ context.Context, _ string) (domain.RecordContext, error) {
		return domain.RecordContext{}, errors.New("connector down")
	})
	step := NewStep(failing, nil)

	out, err := step.Run(context.Background(), domain.NewWorkflowState("q"))
	require.NoError(t, err, "source errors must not abort the workflow")
	assert.False(t, out.RecordContext.Found)
}
