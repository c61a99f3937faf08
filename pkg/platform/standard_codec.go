package platform

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// StandardCodec implements MessageCodec using a compact, self-describing
// binary encoding. Every value is written as a one-byte type tag followed by
// the value's payload. It is the codec of choice for channels that carry
// structured domain values: an ExtensionCodec can claim tags from
// ExtensionTagMin upward for custom types without changing how any existing
// type is encoded.
//
// Integers are encoded as int32 when they fit and int64 otherwise; both
// decode to int64. Lists decode to []any and maps to map[any]any.
type StandardCodec struct {
	// Ext handles custom tagged types. Optional.
	Ext ExtensionCodec
}

// ExtensionCodec extends StandardCodec with custom tagged types.
type ExtensionCodec interface {
	// EncodeExtension writes value if it is one of the extension's types.
	// It reports whether the value was handled.
	EncodeExtension(w *Writer, value any) (bool, error)

	// DecodeExtension reconstructs the value for a tag claimed by the
	// extension. It returns ErrUnknownTag for tags it does not own.
	DecodeExtension(tag byte, r *Reader) (any, error)
}

// ErrUnknownTag indicates a decode encountered a type tag that neither the
// standard codec nor the configured extension recognizes. This is a protocol
// violation: the Go side and the native bridge disagree on the wire format.
var ErrUnknownTag = errors.New("unknown codec tag")

// Type tags for the standard value set.
const (
	tagNil     byte = 0
	tagTrue    byte = 1
	tagFalse   byte = 2
	tagInt32   byte = 3
	tagInt64   byte = 4
	tagFloat64 byte = 5
	tagString  byte = 6
	tagBytes   byte = 7
	tagList    byte = 8
	tagMap     byte = 9

	// ExtensionTagMin is the first tag available to extension codecs.
	ExtensionTagMin byte = 128
)

// Encode serializes the value to tagged binary bytes.
func (c StandardCodec) Encode(value any) ([]byte, error) {
	w := &Writer{ext: c.Ext}
	if err := w.WriteValue(value); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// Decode deserializes tagged binary bytes to a Go value.
// Trailing bytes after the root value are a protocol violation.
func (c StandardCodec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r := &Reader{data: data, ext: c.Ext}
	value, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, fmt.Errorf("codec: %d trailing bytes after value", len(r.data)-r.pos)
	}
	return value, nil
}

// Writer serializes values in the standard tagged encoding.
// Extension codecs receive a Writer to emit their fields through WriteValue.
type Writer struct {
	buf []byte
	ext ExtensionCodec
}

// WriteTag writes a raw type tag. Extension codecs call this with their own
// tag before writing the member fields.
func (w *Writer) WriteTag(tag byte) {
	w.buf = append(w.buf, tag)
}

// WriteSize writes a variable-length non-negative size: one byte below 254,
// 254 plus uint16 up to 65535, 255 plus uint32 beyond.
func (w *Writer) WriteSize(n int) {
	switch {
	case n < 254:
		w.buf = append(w.buf, byte(n))
	case n <= math.MaxUint16:
		w.buf = append(w.buf, 254)
		w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(n))
	default:
		w.buf = append(w.buf, 255)
		w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(n))
	}
}

// WriteValue writes any supported value, consulting the extension codec for
// types outside the standard set.
func (w *Writer) WriteValue(value any) error {
	switch v := value.(type) {
	case nil:
		w.WriteTag(tagNil)
	case bool:
		if v {
			w.WriteTag(tagTrue)
		} else {
			w.WriteTag(tagFalse)
		}
	case int:
		w.writeInt(int64(v))
	case int32:
		w.writeInt(int64(v))
	case int64:
		w.writeInt(v)
	case float32:
		w.writeFloat(float64(v))
	case float64:
		w.writeFloat(v)
	case string:
		w.WriteTag(tagString)
		w.WriteSize(len(v))
		w.buf = append(w.buf, v...)
	case []byte:
		w.WriteTag(tagBytes)
		w.WriteSize(len(v))
		w.buf = append(w.buf, v...)
	case []string:
		w.WriteTag(tagList)
		w.WriteSize(len(v))
		for _, item := range v {
			if err := w.WriteValue(item); err != nil {
				return err
			}
		}
	case []any:
		w.WriteTag(tagList)
		w.WriteSize(len(v))
		for _, item := range v {
			if err := w.WriteValue(item); err != nil {
				return err
			}
		}
	case map[string]any:
		w.WriteTag(tagMap)
		w.WriteSize(len(v))
		for key, val := range v {
			if err := w.WriteValue(key); err != nil {
				return err
			}
			if err := w.WriteValue(val); err != nil {
				return err
			}
		}
	case map[string]string:
		w.WriteTag(tagMap)
		w.WriteSize(len(v))
		for key, val := range v {
			if err := w.WriteValue(key); err != nil {
				return err
			}
			if err := w.WriteValue(val); err != nil {
				return err
			}
		}
	case map[string][]string:
		w.WriteTag(tagMap)
		w.WriteSize(len(v))
		for key, val := range v {
			if err := w.WriteValue(key); err != nil {
				return err
			}
			if err := w.WriteValue(val); err != nil {
				return err
			}
		}
	case map[any]any:
		w.WriteTag(tagMap)
		w.WriteSize(len(v))
		for key, val := range v {
			if err := w.WriteValue(key); err != nil {
				return err
			}
			if err := w.WriteValue(val); err != nil {
				return err
			}
		}
	default:
		if w.ext != nil {
			handled, err := w.ext.EncodeExtension(w, value)
			if err != nil {
				return err
			}
			if handled {
				return nil
			}
		}
		return fmt.Errorf("codec: unsupported type %T", value)
	}
	return nil
}

func (w *Writer) writeInt(v int64) {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		w.WriteTag(tagInt32)
		w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(int32(v)))
		return
	}
	w.WriteTag(tagInt64)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

func (w *Writer) writeFloat(v float64) {
	w.WriteTag(tagFloat64)
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// Reader deserializes values in the standard tagged encoding.
// Extension codecs receive a Reader to reconstruct their fields via ReadValue.
type Reader struct {
	data []byte
	pos  int
	ext  ExtensionCodec
}

// ReadValue reads the next value, dispatching extension tags to the
// configured extension codec.
func (r *Reader) ReadValue() (any, error) {
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagTrue:
		return true, nil
	case tagFalse:
		return false, nil
	case tagInt32:
		b, err := r.take(4)
		if err != nil {
			return nil, err
		}
		return int64(int32(binary.LittleEndian.Uint32(b))), nil
	case tagInt64:
		b, err := r.take(8)
		if err != nil {
			return nil, err
		}
		return int64(binary.LittleEndian.Uint64(b)), nil
	case tagFloat64:
		b, err := r.take(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case tagString:
		return r.readString()
	case tagBytes:
		n, err := r.ReadSize()
		if err != nil {
			return nil, err
		}
		b, err := r.take(n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, b)
		return out, nil
	case tagList:
		n, err := r.ReadSize()
		if err != nil {
			return nil, err
		}
		list := make([]any, n)
		for i := range list {
			if list[i], err = r.ReadValue(); err != nil {
				return nil, err
			}
		}
		return list, nil
	case tagMap:
		n, err := r.ReadSize()
		if err != nil {
			return nil, err
		}
		m := make(map[any]any, n)
		for i := 0; i < n; i++ {
			key, err := r.ReadValue()
			if err != nil {
				return nil, err
			}
			val, err := r.ReadValue()
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	default:
		if tag >= ExtensionTagMin && r.ext != nil {
			return r.ext.DecodeExtension(tag, r)
		}
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, tag)
	}
}

// ReadSize reads a size written by Writer.WriteSize.
func (r *Reader) ReadSize() (int, error) {
	b, err := r.readByte()
	if err != nil {
		return 0, err
	}
	switch b {
	case 254:
		raw, err := r.take(2)
		if err != nil {
			return 0, err
		}
		return int(binary.LittleEndian.Uint16(raw)), nil
	case 255:
		raw, err := r.take(4)
		if err != nil {
			return 0, err
		}
		return int(binary.LittleEndian.Uint32(raw)), nil
	default:
		return int(b), nil
	}
}

func (r *Reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("codec: unexpected end of data at offset %d", r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("codec: unexpected end of data at offset %d (need %d bytes)", r.pos, n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) readString() (string, error) {
	n, err := r.ReadSize()
	if err != nil {
		return "", err
	}
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
