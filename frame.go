package etf

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// versionTag is the mandatory first byte of every ETF frame.
const versionTag byte = 0x83

// compressedTag marks a frame whose payload is zlib-deflated, following
// the version byte.
const compressedTag byte = 0x50

// Decode parses a full ETF frame: the version byte, an optional
// compression sub-frame, and the term payload. It returns the decoded term
// and any bytes left over after it (a frame never encloses more than one
// top-level term, but callers scanning a stream may pass a buffer holding
// more than one frame back to back).
func Decode(data []byte) (any, []byte, error) {
	if len(data) < 1 {
		return nil, nil, IncompleteDataError{Input: data}
	}
	if data[0] != versionTag {
		return nil, nil, ErrBadVersion
	}
	body := data[1:]
	if len(body) >= 1 && body[0] == compressedTag {
		return decodeCompressed(body[1:])
	}
	return decodeTermBytes(body)
}

func decodeCompressed(body []byte) (any, []byte, error) {
	if len(body) < 4 {
		return nil, nil, IncompleteDataError{Input: body}
	}
	declared := beUint32(body[:4])
	stream := body[4:]
	br := bytes.NewReader(stream)
	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, nil, ErrBadCompression
	}

	inflated, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return nil, nil, ErrBadCompression
	}
	if uint32(len(inflated)) != declared {
		return nil, nil, ErrBadCompression
	}

	// Bytes left unconsumed in the underlying reader after the deflate
	// stream ends belong to whatever follows this frame, not this term.
	tail := stream[len(stream)-br.Len():]

	term, _, err := decodeTermBytes(inflated)
	if err != nil {
		return nil, nil, err
	}
	return term, tail, nil
}

// Encode produces a full ETF frame for term. With no compression argument,
// or CompressionOff, the frame is the version byte followed by the
// uncompressed payload. CompressionDefault or a CompressionLevel request
// zlib-deflates the payload and uses the compressed sub-frame only when it
// is no larger than the uncompressed frame after accounting for the
// sub-frame's own overhead (the version byte, compression tag, and 4-byte
// declared-length header); otherwise Encode silently falls back to the
// uncompressed frame.
func Encode(term any, compression ...Compression) ([]byte, error) {
	payload, err := EncodeTerm(term)
	if err != nil {
		return nil, err
	}

	level := CompressionOff
	if len(compression) > 0 {
		level = compression[0]
	}
	if level == CompressionOff {
		return append([]byte{versionTag}, payload...), nil
	}

	zlibLevel := int(level)
	if level == CompressionDefault {
		zlibLevel = 6
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlibLevel)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(payload); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	deflated := buf.Bytes()

	if 5+len(deflated) > len(payload) {
		return append([]byte{versionTag}, payload...), nil
	}

	out := make([]byte, 0, 2+4+len(deflated))
	out = append(out, versionTag, compressedTag)
	out = append(out,
		byte(len(payload)>>24), byte(len(payload)>>16),
		byte(len(payload)>>8), byte(len(payload)))
	out = append(out, deflated...)
	return out, nil
}
