package tui

import (
	"github.com/skip2/go-qrcode"
)

// renderQR draws data as a compact terminal QR code. Returns "" when the
// payload cannot be encoded; the address text is still shown so nothing is
// lost.
func renderQR(data string) string {
	if data == "" {
		return ""
	}
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return ""
	}
	return qr.ToSmallString(false)
}
