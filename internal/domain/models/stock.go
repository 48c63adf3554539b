package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StockSourceKind discriminates how an item expressed its stock.
type StockSourceKind int

const (
	// StockFlat means quantities sit directly on the item record.
	StockFlat StockSourceKind = iota
	// StockWarehouses means one or more warehouse sub-records carry them.
	StockWarehouses
)

// WarehouseField is one key/value pair of a warehouse record, kept in
// document order because quantity selection is order-sensitive.
type WarehouseField struct {
	Key      string
	Value    float64
	IsNumber bool
}

// WarehouseRecord is a stocking-location sub-record of a catalog item.
type WarehouseRecord struct {
	Fields []WarehouseField
	Raw    json.RawMessage
}

// StockSource is the stock representation of an item after shape resolution:
// either a gathered list of warehouse records (a bare object counts as a
// one-element list) or the item's own flat quantity fields.
type StockSource struct {
	Kind       StockSourceKind
	Warehouses []WarehouseRecord
	Flat       []json.RawMessage
}

// Total computes the item's aggregate stock. Warehouse records are summed
// per the quantity heuristic; flat items yield the first finite number among
// their quantity fields, defaulting to 0.
func (s StockSource) Total() float64 {
	if s.Kind == StockWarehouses {
		var sum float64
		for _, wh := range s.Warehouses {
			sum += warehouseQuantity(wh)
		}
		return sum
	}
	for _, raw := range s.Flat {
		if n, ok := numberFrom(raw); ok {
			return n
		}
	}
	return 0
}

// RawRecords returns the gathered warehouse records as raw JSON, for echoing
// back to callers untouched.
func (s StockSource) RawRecords() []json.RawMessage {
	records := make([]json.RawMessage, 0, len(s.Warehouses))
	for _, wh := range s.Warehouses {
		records = append(records, wh.Raw)
	}
	return records
}

// warehouseQuantity picks the quantity of a single warehouse record from its
// inconsistently-named fields. Candidate buckets are tried in priority order
// (key contains "current", then "available", then "quantity", then the exact
// key "stock"); a candidate is discarded when its key contains "initial",
// "min" or "max", or its value is not a finite number. When no candidate
// survives, the largest numeric field wins, ignoring any "cost" field.
//
// The heuristic is deliberately tolerant of schema variance across upstream
// accounts; do not tighten it without checking real account payloads.
func warehouseQuantity(rec WarehouseRecord) float64 {
	buckets := []func(key string) bool{
		func(key string) bool { return strings.Contains(key, "current") },
		func(key string) bool { return strings.Contains(key, "available") },
		func(key string) bool { return strings.Contains(key, "quantity") },
		func(key string) bool { return key == "stock" },
	}

	for _, match := range buckets {
		for _, f := range rec.Fields {
			key := strings.ToLower(f.Key)
			if !match(key) {
				continue
			}
			if strings.Contains(key, "initial") || strings.Contains(key, "min") || strings.Contains(key, "max") {
				continue
			}
			if !f.IsNumber {
				continue
			}
			return f.Value
		}
	}

	var best float64
	for _, f := range rec.Fields {
		if strings.Contains(strings.ToLower(f.Key), "cost") {
			continue
		}
		if f.IsNumber && f.Value > best {
			best = f.Value
		}
	}
	return best
}

// parseStockSource resolves the item's stock shape once. Warehouse-like
// records are gathered from both the warehouses and inventory fields; when
// neither yields any, the item-level quantity fields apply.
func parseStockSource(warehouses, inventory json.RawMessage, flat []json.RawMessage) (StockSource, error) {
	var records []WarehouseRecord
	for _, raw := range []json.RawMessage{warehouses, inventory} {
		gathered, err := gatherWarehouseRecords(raw)
		if err != nil {
			return StockSource{}, err
		}
		records = append(records, gathered...)
	}

	if len(records) > 0 {
		return StockSource{Kind: StockWarehouses, Warehouses: records}, nil
	}
	return StockSource{Kind: StockFlat, Flat: flat}, nil
}

func gatherWarehouseRecords(raw json.RawMessage) ([]WarehouseRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case isAbsent(trimmed):
		return nil, nil
	case trimmed[0] == '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, err
		}
		records := make([]WarehouseRecord, 0, len(elems))
		for _, elem := range elems {
			rec, ok, err := parseWarehouseRecord(elem)
			if err != nil {
				return nil, err
			}
			if ok {
				records = append(records, rec)
			}
		}
		return records, nil
	case trimmed[0] == '{':
		rec, ok, err := parseWarehouseRecord(trimmed)
		if err != nil || !ok {
			return nil, err
		}
		return []WarehouseRecord{rec}, nil
	default:
		// Scalar noise in the field; nothing warehouse-like here.
		return nil, nil
	}
}

// parseWarehouseRecord walks the object with a token decoder so field order
// survives; a plain map would shuffle keys and make bucket selection
// nondeterministic.
func parseWarehouseRecord(raw json.RawMessage) (WarehouseRecord, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if isAbsent(trimmed) || trimmed[0] != '{' {
		return WarehouseRecord{}, false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return WarehouseRecord{}, false, err
	}

	rec := WarehouseRecord{Raw: trimmed}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return WarehouseRecord{}, false, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return WarehouseRecord{}, false, fmt.Errorf("unexpected token %v in warehouse record", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return WarehouseRecord{}, false, err
		}

		field := WarehouseField{Key: key}
		if n, isNum := numberFrom(value); isNum {
			field.Value = n
			field.IsNumber = true
		}
		rec.Fields = append(rec.Fields, field)
	}
	return rec, true, nil
}
