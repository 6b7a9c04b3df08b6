// Package container persists a palette/index-grid pair as a single
// archive file and loads it back with shapes and element widths intact.
//
// Layout, all integers little-endian:
//
//	"PALZ" | version u8 | section count u8
//	per section:
//	  name len u8 | name | elem size u8 | dim count u8 | dims []u32
//	  raw size u32 | stored size u32 | method u8 | payload
//
// The archive holds exactly two sections, "palette" with shape (P, 4)
// and "indices" with shape (H, W). Index elements are 1, 2 or 4 bytes
// wide; a reader accepts any of the three widths. Payloads are LZ4
// block compressed, falling back to raw storage when incompressible.
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"palpack/quant"

	"github.com/pierrec/lz4/v4"
)

const (
	formatVersion = 1

	paletteName = "palette"
	indicesName = "indices"

	methodRaw byte = 0
	methodLZ4 byte = 1
)

var magic = [4]byte{'P', 'A', 'L', 'Z'}

type section struct {
	elemSize int
	dims     []uint32
	data     []byte
}

// Write serializes the pair to w.
func Write(w io.Writer, res *quant.Result) error {
	if _, err := w.Write(magic[:]); err != nil {
		return fmt.Errorf("could not write magic: %w", err)
	}
	if _, err := w.Write([]byte{formatVersion, 2}); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	pal := make([]byte, 0, len(res.Palette)*4)
	for _, c := range res.Palette {
		pal = append(pal, c[:]...)
	}
	err := writeSection(w, paletteName, section{
		elemSize: 1,
		dims:     []uint32{uint32(len(res.Palette)), 4},
		data:     pal,
	})
	if err != nil {
		return err
	}

	idx := res.Indices
	return writeSection(w, indicesName, section{
		elemSize: idx.Depth.ByteSize(),
		dims:     []uint32{uint32(idx.Height), uint32(idx.Width)},
		data:     packIndices(idx),
	})
}

// Read parses an archive and rebuilds the pair. The index depth is
// re-derived from the stored element width, not from the palette size,
// so a hand-edited archive keeps its width.
func Read(r io.Reader) (*quant.Result, error) {
	var head [6]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	if !bytes.Equal(head[:4], magic[:]) {
		return nil, fmt.Errorf("not a palette archive: bad magic %q", head[:4])
	}
	if head[4] != formatVersion {
		return nil, fmt.Errorf("unsupported archive version: %d", head[4])
	}

	sections := make(map[string]section, head[5])
	for i := range int(head[5]) {
		name, sec, err := readSection(r)
		if err != nil {
			return nil, fmt.Errorf("could not read section %d: %w", i, err)
		}
		if _, ok := sections[name]; ok {
			return nil, fmt.Errorf("duplicate section %q", name)
		}
		sections[name] = sec
	}

	pal, err := unpackPalette(sections)
	if err != nil {
		return nil, err
	}
	idx, err := unpackIndices(sections)
	if err != nil {
		return nil, err
	}
	return &quant.Result{Palette: pal, Indices: idx}, nil
}

func writeSection(w io.Writer, name string, sec section) error {
	var head bytes.Buffer
	head.WriteByte(uint8(len(name)))
	head.WriteString(name)
	head.WriteByte(uint8(sec.elemSize))
	head.WriteByte(uint8(len(sec.dims)))
	for _, d := range sec.dims {
		binary.Write(&head, binary.LittleEndian, d)
	}

	stored, method := compressBlock(sec.data)
	binary.Write(&head, binary.LittleEndian, uint32(len(sec.data)))
	binary.Write(&head, binary.LittleEndian, uint32(len(stored)))
	head.WriteByte(method)

	if _, err := w.Write(head.Bytes()); err != nil {
		return fmt.Errorf("could not write %q header: %w", name, err)
	}
	if _, err := w.Write(stored); err != nil {
		return fmt.Errorf("could not write %q payload: %w", name, err)
	}
	return nil
}

func readSection(r io.Reader) (string, section, error) {
	var nameLen [1]byte
	if _, err := io.ReadFull(r, nameLen[:]); err != nil {
		return "", section{}, fmt.Errorf("could not read name length: %w", err)
	}
	nameBuf := make([]byte, nameLen[0])
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return "", section{}, fmt.Errorf("could not read name: %w", err)
	}
	name := string(nameBuf)

	var shape [2]byte
	if _, err := io.ReadFull(r, shape[:]); err != nil {
		return name, section{}, fmt.Errorf("could not read %q shape: %w", name, err)
	}
	sec := section{
		elemSize: int(shape[0]),
		dims:     make([]uint32, shape[1]),
	}
	if err := binary.Read(r, binary.LittleEndian, sec.dims); err != nil {
		return name, section{}, fmt.Errorf("could not read %q dims: %w", name, err)
	}

	var rawSize, storedSize uint32
	if err := binary.Read(r, binary.LittleEndian, &rawSize); err != nil {
		return name, section{}, fmt.Errorf("could not read %q raw size: %w", name, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &storedSize); err != nil {
		return name, section{}, fmt.Errorf("could not read %q stored size: %w", name, err)
	}
	var method [1]byte
	if _, err := io.ReadFull(r, method[:]); err != nil {
		return name, section{}, fmt.Errorf("could not read %q method: %w", name, err)
	}

	stored := make([]byte, storedSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return name, section{}, fmt.Errorf("could not read %q payload: %w", name, err)
	}

	var err error
	if sec.data, err = decompressBlock(stored, int(rawSize), method[0]); err != nil {
		return name, section{}, fmt.Errorf("could not decompress %q: %w", name, err)
	}

	want := sec.elemSize
	for _, d := range sec.dims {
		want *= int(d)
	}
	if len(sec.data) != want {
		return name, section{}, fmt.Errorf("%q payload is %d bytes, shape wants %d",
			name, len(sec.data), want)
	}
	return name, sec, nil
}

func compressBlock(src []byte) ([]byte, byte) {
	if len(src) == 0 {
		return nil, methodRaw
	}
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, dst, nil)
	if err != nil || n == 0 || n >= len(src) {
		// Incompressible, store as-is.
		return src, methodRaw
	}
	return dst[:n], methodLZ4
}

func decompressBlock(stored []byte, rawSize int, method byte) ([]byte, error) {
	switch method {
	case methodRaw:
		if len(stored) != rawSize {
			return nil, fmt.Errorf("raw payload is %d bytes, want %d", len(stored), rawSize)
		}
		return stored, nil
	case methodLZ4:
		dst := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(stored, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("lz4: got %d bytes, want %d", n, rawSize)
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("unknown storage method %d", method)
	}
}

func packIndices(idx *quant.IndexGrid) []byte {
	out := make([]byte, 0, len(idx.Idx)*idx.Depth.ByteSize())
	switch idx.Depth {
	case quant.Depth8:
		for _, v := range idx.Idx {
			out = append(out, uint8(v))
		}
	case quant.Depth16:
		for _, v := range idx.Idx {
			out = binary.LittleEndian.AppendUint16(out, uint16(v))
		}
	default:
		for _, v := range idx.Idx {
			out = binary.LittleEndian.AppendUint32(out, v)
		}
	}
	return out
}

func unpackPalette(sections map[string]section) (quant.Palette, error) {
	sec, ok := sections[paletteName]
	if !ok {
		return nil, fmt.Errorf("archive has no %q section", paletteName)
	}
	if sec.elemSize != 1 || len(sec.dims) != 2 || sec.dims[1] != 4 {
		return nil, fmt.Errorf("unexpected palette shape: %d-byte elements, dims %v",
			sec.elemSize, sec.dims)
	}

	pal := make(quant.Palette, sec.dims[0])
	for i := range pal {
		copy(pal[i][:], sec.data[i*4:i*4+4])
	}
	return pal, nil
}

func unpackIndices(sections map[string]section) (*quant.IndexGrid, error) {
	sec, ok := sections[indicesName]
	if !ok {
		return nil, fmt.Errorf("archive has no %q section", indicesName)
	}
	if len(sec.dims) != 2 {
		return nil, fmt.Errorf("unexpected index dims %v", sec.dims)
	}

	var depth quant.Depth
	switch sec.elemSize {
	case 1:
		depth = quant.Depth8
	case 2:
		depth = quant.Depth16
	case 4:
		depth = quant.Depth32
	default:
		return nil, fmt.Errorf("unsupported index width: %d bytes", sec.elemSize)
	}

	idx := quant.NewIndexGrid(int(sec.dims[1]), int(sec.dims[0]), depth)
	switch depth {
	case quant.Depth8:
		for i, b := range sec.data {
			idx.Idx[i] = uint32(b)
		}
	case quant.Depth16:
		for i := range idx.Idx {
			idx.Idx[i] = uint32(binary.LittleEndian.Uint16(sec.data[i*2:]))
		}
	default:
		for i := range idx.Idx {
			idx.Idx[i] = binary.LittleEndian.Uint32(sec.data[i*4:])
		}
	}
	return idx, nil
}
