package utils

import qrcode "github.com/skip2/go-qrcode"

// GenerateQRPNG renders the pickup token as a 256x256 PNG with high error
// correction, so a worn screen or a bad camera angle still scans.
func GenerateQRPNG(data string) ([]byte, error) {
	return qrcode.Encode(data, qrcode.High, 256)
}
