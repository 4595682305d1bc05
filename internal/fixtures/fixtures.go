// Package fixtures ships the built-in maintenance dataset used when no
// external corpus or records file is configured: a small knowledge base of
// failure-mode notes and a machine roster matching it.
package fixtures

import (
	"fmt"
	"os"
	"strings"

	"github.com/ariadx/aria/internal/records"
)

// SampleDocuments returns the built-in failure-mode knowledge snippets.
func SampleDocuments() []string {
	return []string{
		"Bearing failure on CNC mills is most often caused by sustained operation above rated torque. " +
			"Inspect the spindle bearing for discoloration and measure radial play before restarting.",
		"High torque readings combined with rising spindle temperature indicate accelerated bearing wear. " +
			"Reduce feed rate and schedule bearing replacement within 48 hours.",
		"Machine M001 has a history of bearing failures following torque spikes during heavy cuts. " +
			"Previous incidents were resolved by replacing the front spindle bearing and recalibrating the drive.",
		"Hydraulic pressure drops below 180 bar usually trace to a worn pump seal or contaminated fluid. " +
			"Check the return filter and top up with ISO VG 46 before deeper teardown.",
		"Routine lubrication intervals for spindle bearings: every 500 operating hours under normal load, " +
			"every 250 hours when average torque exceeds 80 percent of rating.",
		"Vibration signatures above 4 mm/s RMS at bearing frequencies are an early warning of raceway damage. " +
			"Trend the readings weekly and escalate when two consecutive readings rise.",
		"Repair procedure for spindle bearing replacement: lock out the machine, remove the drawbar assembly, " +
			"press out the old bearing, and torque the retaining nut to the value on the spindle data plate.",
		"Recurring alarms for servo overload on the X axis have historically preceded ball screw failures. " +
			"Check preload and backlash when the alarm count exceeds three per shift.",
	}
}

// SampleMachines returns the built-in machine roster.
func SampleMachines() []records.MachineRecord {
	return []records.MachineRecord{
		{MachineID: "M001", LastMaintenance: "2026-07-02", OpenWorkOrders: 3, BearingStock: 2, HydraulicStock: 7, Status: "critical"},
		{MachineID: "M002", LastMaintenance: "2026-08-11", OpenWorkOrders: 1, BearingStock: 6, HydraulicStock: 4, Status: "operational"},
		{MachineID: "M003", LastMaintenance: "2026-06-20", OpenWorkOrders: 2, BearingStock: 5, HydraulicStock: 9, Status: "degraded"},
	}
}

// LoadDocuments reads a corpus file with documents separated by blank
// lines. Lines inside a document are joined with single spaces.
func LoadDocuments(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	var docs []string
	for _, block := range strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n\n") {
		doc := strings.Join(strings.Fields(block), " ")
		if doc != "" {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
