package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// codec ids are persisted as the first byte of every cache entry
const (
	codecNone byte = iota
	codecZstd
	codecS2
	codecLZ4
)

var ErrCorruptEntry = errors.New("corrupt cache entry")

// Codec compresses cache payloads.
type Codec interface {
	Name() string
	id() byte
	Encode(src []byte) ([]byte, error)
	Decode(src []byte) ([]byte, error)
}

func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "zstd":
		return ZstdCodec{}, nil
	case "s2":
		return S2Codec{}, nil
	case "lz4":
		return LZ4Codec{}, nil
	case "none":
		return NoneCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown cache codec: %s", name)
	}
}

func codecByID(id byte) (Codec, error) {
	switch id {
	case codecNone:
		return NoneCodec{}, nil
	case codecZstd:
		return ZstdCodec{}, nil
	case codecS2:
		return S2Codec{}, nil
	case codecLZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: codec id %d", ErrCorruptEntry, id)
	}
}

type NoneCodec struct{}

func (NoneCodec) Name() string { return "none" }
func (NoneCodec) id() byte     { return codecNone }

func (NoneCodec) Encode(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

func (NoneCodec) Decode(src []byte) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(fmt.Sprintf("create zstd encoder: %s", err))
		}
		return encoder
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("create zstd decoder: %s", err))
		}
		return decoder
	},
}

// ZstdCodec gives the best ratio on the float-heavy signal JSON.
type ZstdCodec struct{}

func (ZstdCodec) Name() string { return "zstd" }
func (ZstdCodec) id() byte     { return codecZstd }

func (ZstdCodec) Encode(src []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)
	return encoder.EncodeAll(src, nil), nil
}

func (ZstdCodec) Decode(src []byte) ([]byte, error) {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

type S2Codec struct{}

func (S2Codec) Name() string { return "s2" }
func (S2Codec) id() byte     { return codecS2 }

func (S2Codec) Encode(src []byte) ([]byte, error) {
	return s2.Encode(nil, src), nil
}

func (S2Codec) Decode(src []byte) ([]byte, error) {
	out, err := s2.Decode(nil, src)
	if err != nil {
		return nil, fmt.Errorf("s2 decode: %w", err)
	}
	return out, nil
}

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec stores the uncompressed length as a uvarint prefix before the lz4 block.
type LZ4Codec struct{}

func (LZ4Codec) Name() string { return "lz4" }
func (LZ4Codec) id() byte     { return codecLZ4 }

func (LZ4Codec) Encode(src []byte) ([]byte, error) {
	header := binary.AppendUvarint(nil, uint64(len(src)))
	dst := make([]byte, len(header)+lz4.CompressBlockBound(len(src)))
	copy(dst, header)

	lc := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(src, dst[len(header):])
	if err != nil {
		return nil, fmt.Errorf("lz4 encode: %w", err)
	}
	if n == 0 && len(src) > 0 {
		return nil, errIncompressible
	}
	return dst[:len(header)+n], nil
}

func (LZ4Codec) Decode(src []byte) ([]byte, error) {
	size, n := binary.Uvarint(src)
	if n <= 0 {
		return nil, fmt.Errorf("%w: lz4 length prefix", ErrCorruptEntry)
	}
	if size == 0 {
		return []byte{}, nil
	}

	out := make([]byte, size)
	written, err := lz4.UncompressBlock(src[n:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decode: %w", err)
	}
	if uint64(written) != size {
		return nil, fmt.Errorf("%w: lz4 length %d, want %d", ErrCorruptEntry, written, size)
	}
	return out, nil
}

// errIncompressible makes the cache fall back to storing the payload as is.
var errIncompressible = errors.New("payload incompressible")
