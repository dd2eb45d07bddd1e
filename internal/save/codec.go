package save

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns snapshots into bytes and back. Decode writes into dst, leaving
// fields absent from data untouched.
type Codec interface {
	Name() string
	Encode(s *Snapshot) ([]byte, error)
	Decode(data []byte, dst *Snapshot) error
}

// JSONCodec writes indented JSON and validates input against the snapshot
// schema before decoding.
type JSONCodec struct{}

var snapshotSchema = jsonschema.MustCompileString("deep-miner/snapshot.json", snapshotSchemaJSON)

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func (JSONCodec) Decode(data []byte, dst *Snapshot) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if err := snapshotSchema.Validate(doc); err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}
	scratch := cloneSnapshot(dst)
	if err := json.Unmarshal(data, scratch); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	*dst = *scratch
	return nil
}

// MsgpackCodec writes the compact binary form.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return "msgpack" }

func (MsgpackCodec) Encode(s *Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

func (MsgpackCodec) Decode(data []byte, dst *Snapshot) error {
	// A truncated payload must not leave dst half written.
	scratch := cloneSnapshot(dst)
	if err := msgpack.Unmarshal(data, scratch); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	*dst = *scratch
	return nil
}

// CodecByName returns the codec registered under name.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown save codec %q", name)
	}
}

// Detect picks the codec that produced data. JSON documents start with '{'
// after optional whitespace; anything else is treated as msgpack.
func Detect(data []byte) Codec {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return JSONCodec{}
	}
	return MsgpackCodec{}
}

func cloneSnapshot(s *Snapshot) *Snapshot {
	c := *s
	c.Ledger.Inventory = cloneNames(s.Ledger.Inventory)
	c.Ledger.Stats.OreCollected = cloneNames(s.Ledger.Stats.OreCollected)
	c.World.Edits = append([]EditRecord(nil), s.World.Edits...)
	c.World.Revealed = append([][2]int(nil), s.World.Revealed...)
	return &c
}

func cloneNames(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
