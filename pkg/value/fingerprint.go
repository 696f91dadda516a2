package value

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a 64-bit content hash of the value. The encoding is
// canonical: object keys are visited in sorted order and set elements are
// combined order-insensitively, so structurally equal values hash equally.
// Used to collapse duplicate set elements and to bucket set comparisons;
// collisions are resolved with Equal.
//
// Returns:
//
//	uint64: The xxhash fingerprint of the canonical encoding.
func (v Value) Fingerprint() uint64 {
	d := xxhash.New()
	v.writeCanonical(d)
	return d.Sum64()
}

func (v Value) writeCanonical(d *xxhash.Digest) {
	_, _ = d.WriteString(string(v.Kind()))
	_, _ = d.WriteString("\x00")
	switch v.kind {
	case ValueBool:
		if v.boolVal {
			_, _ = d.WriteString("1")
		} else {
			_, _ = d.WriteString("0")
		}
	case ValueInt:
		writeUint64(d, uint64(v.intVal))
	case ValueFloat:
		writeUint64(d, math.Float64bits(v.floatVal))
	case ValueString:
		_, _ = d.WriteString(v.stringVal)
	case ValueArray, ValueTuple:
		for _, item := range v.items {
			writeUint64(d, item.Fingerprint())
		}
	case ValueSet:
		fps := make([]uint64, len(v.items))
		for i, item := range v.items {
			fps[i] = item.Fingerprint()
		}
		sort.Slice(fps, func(i, j int) bool { return fps[i] < fps[j] })
		for _, fp := range fps {
			writeUint64(d, fp)
		}
	case ValueObject:
		for _, k := range sortedKeys(v.entries) {
			_, _ = d.WriteString(k)
			_, _ = d.WriteString("\x00")
			writeUint64(d, v.entries[k].Fingerprint())
		}
	case ValueRecord:
		_, _ = d.WriteString(v.name)
		_, _ = d.WriteString("\x00")
		for _, f := range v.fields {
			_, _ = d.WriteString(f.Name)
			_, _ = d.WriteString("\x00")
			writeUint64(d, f.Value.Fingerprint())
		}
	case ValueEnum:
		_, _ = d.WriteString(v.name)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(v.stringVal)
	case ValueTime:
		writeUint64(d, uint64(v.timeVal.UTC().UnixNano()))
	}
}

func writeUint64(d *xxhash.Digest, u uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], u)
	_, _ = d.Write(buf[:])
}
