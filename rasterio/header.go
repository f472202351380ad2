// Package rasterio handles the binary DEM and TVS raster formats of
// spec §6: a 256-byte opaque header passed through byte-for-byte
// except for a handful of fields this package must overwrite, plus the
// elevation/surface grid body that follows it.
package rasterio

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"strconv"

	stgpsr "github.com/yuin/stagparser"
)

const HeaderSize = 256

var ErrLayoutTag = errors.New("header field missing a layout tag")

// Header carries only the fields this package ever inspects or
// overwrites; every other byte of the 256-byte block is kept in Raw
// and passed through verbatim, per spec §6's "unknown-field
// passthrough" rule.
type Header struct {
	Cols      uint32 `layout:"offset=10,size=4,kind=uint32"`
	Rows      uint32 `layout:"offset=14,size=4,kind=uint32"`
	DataSize  uint16 `layout:"offset=18,size=2,kind=uint16"`
	FloatFlag uint16 `layout:"offset=20,size=2,kind=uint16"`
	MinX      float64 `layout:"offset=28,size=8,kind=float64"`
	MinY      float64 `layout:"offset=36,size=8,kind=float64"`
	MaxX      float64 `layout:"offset=44,size=8,kind=float64"`
	MaxY      float64 `layout:"offset=52,size=8,kind=float64"`

	Raw [HeaderSize]byte
}

type fieldLayout struct {
	offset int
	size   int
	kind   string
}

// layouts walks Header's struct tags once via stgpsr.ParseStruct,
// mirroring the teacher's schemaAttrs shape of pulling a
// map[string][]stgpsr.Definition keyed by field name and re-keying each
// field's directives by directive name to read out individual
// attributes.
func layouts() (map[string]fieldLayout, error) {
	h := Header{}
	defs, err := stgpsr.ParseStruct(&h, "layout")
	if err != nil {
		return nil, err
	}

	t := reflect.TypeOf(h)
	out := make(map[string]fieldLayout, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Name
		fieldDefs := defs[name]
		if len(fieldDefs) == 0 {
			continue
		}
		byName := make(map[string]stgpsr.Definition, len(fieldDefs))
		for _, d := range fieldDefs {
			byName[d.Name()] = d
		}

		offsetDef, ok := byName["offset"]
		if !ok {
			return nil, errors.Join(ErrLayoutTag, errors.New(name))
		}
		offsetVal, _ := offsetDef.Attribute("offset")
		sizeDef := byName["size"]
		sizeVal, _ := sizeDef.Attribute("size")
		kindDef := byName["kind"]
		kindVal, _ := kindDef.Attribute("kind")

		offset, err := strconv.Atoi(offsetVal)
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(sizeVal)
		if err != nil {
			return nil, err
		}

		out[name] = fieldLayout{offset: offset, size: size, kind: kindVal}
	}
	return out, nil
}

// DecodeHeader reads the overridden fields out of a verbatim 256-byte
// block, keeping the block itself as Raw for passthrough on write.
func DecodeHeader(block [HeaderSize]byte) (Header, error) {
	ls, err := layouts()
	if err != nil {
		return Header{}, err
	}

	h := Header{Raw: block}
	for name, l := range ls {
		b := block[l.offset : l.offset+l.size]
		switch l.kind {
		case "uint32":
			v := binary.LittleEndian.Uint32(b)
			reflect.ValueOf(&h).Elem().FieldByName(name).SetUint(uint64(v))
		case "uint16":
			v := binary.LittleEndian.Uint16(b)
			reflect.ValueOf(&h).Elem().FieldByName(name).SetUint(uint64(v))
		case "float64":
			v := binary.LittleEndian.Uint64(b)
			reflect.ValueOf(&h).Elem().FieldByName(name).SetFloat(math.Float64frombits(v))
		}
	}
	return h, nil
}

// EncodeHeader writes h's tracked fields back over a copy of Raw,
// leaving every other byte of the original block untouched — spec §6's
// passthrough-with-overrides contract.
func EncodeHeader(h Header) ([HeaderSize]byte, error) {
	ls, err := layouts()
	if err != nil {
		return h.Raw, err
	}

	block := h.Raw
	for name, l := range ls {
		dst := block[l.offset : l.offset+l.size]
		val := reflect.ValueOf(h).FieldByName(name)
		switch l.kind {
		case "uint32":
			binary.LittleEndian.PutUint32(dst, uint32(val.Uint()))
		case "uint16":
			binary.LittleEndian.PutUint16(dst, uint16(val.Uint()))
		case "float64":
			binary.LittleEndian.PutUint64(dst, math.Float64bits(val.Float()))
		}
	}
	return block, nil
}
