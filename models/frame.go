package models

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// BinaryMarker is the literal prefix that tags base64-encoded binary content
// inside an otherwise plain-text payload. It is applied before encryption and
// survives the encrypt/decrypt round trip verbatim, which is what lets the
// receiving side tell a sealed document apart from sealed text.
const BinaryMarker = "PDF_BASE64:"

// FrameKind distinguishes the two payload shapes a content frame can carry.
type FrameKind string

const (
	// FramePlainText marks ordinary text content with no framing applied.
	FramePlainText FrameKind = "plain_text"

	// FrameEncodedBinary marks content that was a binary document and has
	// been base64-encoded behind [BinaryMarker] before encryption.
	FrameEncodedBinary FrameKind = "encoded_binary"
)

// ContentFrame is the tagging wrapper around content that passes through the
// cipher engine. The engine itself treats framed and unframed content
// identically; the frame only matters to callers that need to reconstruct
// binary documents after decryption.
type ContentFrame struct {
	// Kind reports whether Payload is plain text or marker-framed base64.
	Kind FrameKind `json:"kind"`

	// Payload is the content without the marker prefix. For
	// [FrameEncodedBinary] it is valid base64 of the original bytes.
	Payload string `json:"payload"`
}

// EncodeBinary wraps raw document bytes into the textual frame that the
// cipher engine accepts: the binary marker followed by standard base64.
func EncodeBinary(raw []byte) string {
	return BinaryMarker + base64.StdEncoding.EncodeToString(raw)
}

// ParseFrame reconstructs a ContentFrame from decrypted content. Content
// starting with [BinaryMarker] is classified as encoded binary with the
// marker stripped; everything else is plain text.
func ParseFrame(content string) ContentFrame {
	if strings.HasPrefix(content, BinaryMarker) {
		return ContentFrame{
			Kind:    FrameEncodedBinary,
			Payload: strings.TrimPrefix(content, BinaryMarker),
		}
	}

	return ContentFrame{Kind: FramePlainText, Payload: content}
}

// Serialize returns the wire form of the frame: the payload as-is for plain
// text, or the marker-prefixed payload for encoded binary.
func (f ContentFrame) Serialize() string {
	if f.Kind == FrameEncodedBinary {
		return BinaryMarker + f.Payload
	}

	return f.Payload
}

// Bytes decodes the original document bytes from an encoded-binary frame.
//
// Returns an error if the frame is not [FrameEncodedBinary] or the payload is
// not valid base64.
func (f ContentFrame) Bytes() ([]byte, error) {
	if f.Kind != FrameEncodedBinary {
		return nil, fmt.Errorf("frame does not carry binary content")
	}

	raw, err := base64.StdEncoding.DecodeString(f.Payload)
	if err != nil {
		return nil, fmt.Errorf("error decoding binary frame payload: %w", err)
	}

	return raw, nil
}
