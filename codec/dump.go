package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/svanichkin/memwatch/clock"
)

// DumpMagic prefixes every snapshot dump.
const (
	DumpMagic   = "MWDP"
	dumpVersion = 1
	dumpExt     = ".mwd"
)

// ErrBadDump is returned by ReadDump for input that is not a snapshot dump.
var ErrBadDump = errors.New("codec: not a memwatch dump")

var (
	zstdEncoderLevel = zstd.SpeedBetterCompression

	sharedZstdEncoder persistentZstdEncoder
	sharedZstdDecoder persistentZstdDecoder
)

type persistentZstdEncoder struct {
	once sync.Once
	mu   sync.Mutex
	enc  *zstd.Encoder
	err  error
}

func (p *persistentZstdEncoder) use(fn func(*zstd.Encoder) error) error {
	p.once.Do(func() {
		p.enc, p.err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdEncoderLevel))
	})
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.enc)
}

type persistentZstdDecoder struct {
	once sync.Once
	mu   sync.Mutex
	dec  *zstd.Decoder
	err  error
}

func (p *persistentZstdDecoder) use(fn func(*zstd.Decoder) error) error {
	p.once.Do(func() {
		p.dec, p.err = zstd.NewReader(nil)
	})
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.dec)
}

// Dump is one exported snapshot of the observed region.
type Dump struct {
	PID     int
	Address uint64
	Display uint64
	Taken   time.Time
	Data    []byte
}

type dumpHeader struct {
	PID     uint32
	Address uint64
	Display uint64
	Size    uint32
	Taken   int64
}

// Encode serializes d: magic, version, fixed little-endian header, then the
// zstd-compressed bytes as a length-prefixed field.
func Encode(d Dump) ([]byte, error) {
	var compressed []byte
	if err := sharedZstdEncoder.use(func(enc *zstd.Encoder) error {
		compressed = enc.EncodeAll(d.Data, nil)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("zstd encode: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(DumpMagic)
	buf.WriteByte(dumpVersion)
	hdr := dumpHeader{
		PID:     uint32(d.PID),
		Address: d.Address,
		Display: d.Display,
		Size:    uint32(len(d.Data)),
		Taken:   d.Taken.UnixNano(),
	}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}
	if err := writeField(&buf, compressed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a dump produced by Encode.
func Decode(data []byte) (Dump, error) {
	if len(data) < len(DumpMagic)+1 || string(data[:len(DumpMagic)]) != DumpMagic {
		return Dump{}, ErrBadDump
	}
	if v := data[len(DumpMagic)]; v != dumpVersion {
		return Dump{}, fmt.Errorf("%w: version %d", ErrBadDump, v)
	}
	r := bytes.NewReader(data[len(DumpMagic)+1:])
	var hdr dumpHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return Dump{}, fmt.Errorf("%w: header: %v", ErrBadDump, err)
	}
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return Dump{}, fmt.Errorf("%w: payload length: %v", ErrBadDump, err)
	}
	if int(n) != r.Len() {
		return Dump{}, fmt.Errorf("%w: payload length %d, have %d", ErrBadDump, n, r.Len())
	}
	compressed := data[len(data)-int(n):]

	var raw []byte
	if err := sharedZstdDecoder.use(func(dec *zstd.Decoder) error {
		var err error
		raw, err = dec.DecodeAll(compressed, nil)
		return err
	}); err != nil {
		return Dump{}, fmt.Errorf("zstd decode: %w", err)
	}
	if uint32(len(raw)) != hdr.Size {
		return Dump{}, fmt.Errorf("%w: size %d, decoded %d", ErrBadDump, hdr.Size, len(raw))
	}
	return Dump{
		PID:     int(hdr.PID),
		Address: hdr.Address,
		Display: hdr.Display,
		Taken:   time.Unix(0, hdr.Taken),
		Data:    raw,
	}, nil
}

func writeField(buf *bytes.Buffer, data []byte) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err := buf.Write(data)
	return err
}

// Exporter writes dumps into a directory.
type Exporter struct {
	Dir   string
	Clock clock.Clock
}

// NewExporter returns an exporter writing into dir with the real clock.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir, Clock: clock.Real()}
}

// Export encodes a snapshot and writes it to a new file, returning its path.
func (e *Exporter) Export(pid int, address, display uint64, data []byte) (string, error) {
	c := e.Clock
	if c == nil {
		c = clock.Real()
	}
	d := Dump{
		PID:     pid,
		Address: address,
		Display: display,
		Taken:   c.Now(),
		Data:    data,
	}
	payload, err := Encode(d)
	if err != nil {
		return "", err
	}
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("memwatch-%d-%x-%s%s", pid, address, d.Taken.UTC().Format("20060102T150405.000"), dumpExt)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ReadFile loads a dump written by Exporter.
func ReadFile(path string) (Dump, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Dump{}, err
	}
	return Decode(b)
}
