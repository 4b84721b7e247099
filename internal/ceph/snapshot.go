package ceph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Snapshot is one consistent view of the cluster: a PG dump and an OSD dump.
type Snapshot struct {
	PGMap  PGMap
	OSDMap OSDMap
}

// DecodePGMap parses `ceph pg dump -f json` output.
func DecodePGMap(data []byte) (PGMap, error) {
	var m PGMap
	if err := decode(data, &m); err != nil {
		return PGMap{}, fmt.Errorf("pg dump: %w", err)
	}
	if m.PGStats == nil && (m.Nested == nil || m.Nested.PGStats == nil) {
		return PGMap{}, fmt.Errorf("pg dump: %w: no pg_stats in document", ErrDecode)
	}
	return m, nil
}

// DecodeOSDMap parses `ceph osd dump -f json` output.
func DecodeOSDMap(data []byte) (OSDMap, error) {
	var m OSDMap
	if err := decode(data, &m); err != nil {
		return OSDMap{}, fmt.Errorf("osd dump: %w", err)
	}
	if m.Pools == nil {
		return OSDMap{}, fmt.Errorf("osd dump: %w: no pools in document", ErrDecode)
	}
	return m, nil
}

// DecodeSnapshot parses both documents.
func DecodeSnapshot(pgDump, osdDump []byte) (Snapshot, error) {
	pgMap, err := DecodePGMap(pgDump)
	if err != nil {
		return Snapshot{}, err
	}
	osdMap, err := DecodeOSDMap(osdDump)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{PGMap: pgMap, OSDMap: osdMap}, nil
}

func decode(data []byte, v any) error {
	if !utf8.Valid(data) {
		return ErrEncoding
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty document", ErrDecode)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
