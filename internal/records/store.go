package records

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ariadx/aria/internal/domain"
)

// MachineRecord is one row of the maintenance dataset.
type MachineRecord struct {
	MachineID       string
	LastMaintenance string
	OpenWorkOrders  int
	BearingStock    int
	HydraulicStock  int
	Status          string
}

// Format renders the record in the fixed pipe-delimited text the
// escalation rules parse. The field labels are part of the contract:
// "Bearing stock: <n>" and "Open work orders: <n>" are matched verbatim.
func (r MachineRecord) Format() string {
	return fmt.Sprintf("Machine %s | Last maintenance: %s | Open work orders: %d | "+
		"Bearing stock: %d | Hydraulic stock: %d | Status: %s",
		r.MachineID, r.LastMaintenance, r.OpenWorkOrders,
		r.BearingStock, r.HydraulicStock, r.Status)
}

// machineIDPattern recognizes machine identifiers like "M001" in queries.
var machineIDPattern = regexp.MustCompile(`(?i)\b(m\d{3})\b`)

// Store is an in-memory maintenance dataset implementing Source.
// Production would sit in front of an ERP connector; the data contract is
// identical either way.
type Store struct {
	byID  map[string]MachineRecord
	order []string
}

// NewStore creates a store over the given records.
func NewStore(records []MachineRecord) *Store {
	s := &Store{byID: make(map[string]MachineRecord, len(records))}
	for _, r := range records {
		id := strings.ToUpper(r.MachineID)
		if _, dup := s.byID[id]; !dup {
			s.order = append(s.order, id)
		}
		s.byID[id] = r
	}
	return s
}

// LoadCSV reads a maintenance dataset with the header
// machine_id,last_maintenance,open_work_orders,bearing_stock,hydraulic_stock,status.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse records file: %w", err)
	}
	if len(rows) == 0 {
		return NewStore(nil), nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{
		"machine_id", "last_maintenance", "open_work_orders",
		"bearing_stock", "hydraulic_stock", "status",
	} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("records file missing column %q", required)
		}
	}

	records := make([]MachineRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := MachineRecord{
			MachineID:       strings.TrimSpace(row[col["machine_id"]]),
			LastMaintenance: strings.TrimSpace(row[col["last_maintenance"]]),
			Status:          strings.TrimSpace(row[col["status"]]),
		}
		for _, field := range []struct {
			name string
			dst  *int
		}{
			{"open_work_orders", &rec.OpenWorkOrders},
			{"bearing_stock", &rec.BearingStock},
			{"hydraulic_stock", &rec.HydraulicStock},
		} {
			n, err := strconv.Atoi(strings.TrimSpace(row[col[field.name]]))
			if err != nil {
				return nil, fmt.Errorf("records file row %d: bad %s: %w", i+2, field.name, err)
			}
			*field.dst = n
		}
		records = append(records, rec)
	}

	return NewStore(records), nil
}

// Dispatch executes a named operation from the closed set. The argument is
// the machine ID for OpMachineHistory and ignored for OpCriticalMachines.
func (s *Store) Dispatch(_ context.Context, op Operation, arg string) (string, error) {
	switch op {
	case OpMachineHistory:
		return s.machineHistory(arg)
	case OpCriticalMachines:
		return s.criticalMachines(), nil
	default:
		return "", dispatchError(op)
	}
}

// Lookup implements Source. Operation selection is deterministic: a machine
// identifier in the query fetches that machine's history, a mention of
// critical status lists critical machines, and a query touching neither
// yields a not-found context.
func (s *Store) Lookup(ctx context.Context, query string) (domain.RecordContext, error) {
	var outputs []string

	if m := machineIDPattern.FindString(query); m != "" {
		out, err := s.Dispatch(ctx, OpMachineHistory, strings.ToUpper(m))
		if err == nil {
			outputs = append(outputs, out)
		}
	}
	if strings.Contains(strings.ToLower(query), "critical") {
		out, err := s.Dispatch(ctx, OpCriticalMachines, "")
		if err == nil {
			outputs = append(outputs, out)
		}
	}

	if len(outputs) == 0 {
		return domain.RecordContext{Found: false}, nil
	}
	return domain.RecordContext{Found: true, Data: strings.Join(outputs, "\n")}, nil
}

func (s *Store) machineHistory(machineID string) (string, error) {
	rec, ok := s.byID[strings.ToUpper(machineID)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMachineNotFound, machineID)
	}
	return rec.Format(), nil
}

func (s *Store) criticalMachines() string {
	var entries []string
	for _, id := range s.order {
		rec := s.byID[id]
		if strings.EqualFold(rec.Status, "critical") {
			entries = append(entries, fmt.Sprintf("%s (%d open orders)", rec.MachineID, rec.OpenWorkOrders))
		}
	}
	if len(entries) == 0 {
		return "no critical machines"
	}
	return "critical machines: " + strings.Join(entries, ", ")
}
