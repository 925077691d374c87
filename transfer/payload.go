// Package transfer moves stored records between devices and out to files:
// a compact JSON payload that fits in a QR code, and CSV/YAML exports.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"curator/scoring"
)

var ErrPayloadTooLarge = errors.New("payload does not fit in a QR code")

// Largest byte payload a version 40 code holds at medium recovery.
const maxQRBytes = 2331

// EncodePayload serialises records into the QR transfer format: a plain JSON
// array of submissions.
func EncodePayload(recs []scoring.Record) ([]byte, error) {
	if recs == nil {
		recs = []scoring.Record{}
	}
	return json.Marshal(recs)
}

// DecodePayload reads a scanned payload. A single object is accepted as a
// one-record payload.
func DecodePayload(data []byte) ([]scoring.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty payload")
	}

	if data[0] == '{' {
		var rec scoring.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		return []scoring.Record{rec}, nil
	}

	var recs []scoring.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return recs, nil
}

// QRCode renders payload as a PNG of size x size pixels.
func QRCode(payload []byte, size int) ([]byte, error) {
	if len(payload) > maxQRBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return png, nil
}
