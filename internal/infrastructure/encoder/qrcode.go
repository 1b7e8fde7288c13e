// Package encoder adapts github.com/skip2/go-qrcode to ports.QREncoder.
package encoder

import (
	"github.com/m-mizutani/goerr/v2"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/doeshing/qrgen/internal/domain"
	"github.com/doeshing/qrgen/internal/ports"
)

// QRCode builds module matrices with skip2/go-qrcode.
type QRCode struct{}

// New returns the encoder.
func New() *QRCode {
	return &QRCode{}
}

// Encode implements ports.QREncoder. The returned matrix has no border.
func (e *QRCode) Encode(text string, level domain.ECCLevel, version *int) ([][]bool, error) {
	recovery, err := recoveryLevel(level)
	if err != nil {
		return nil, err
	}

	var code *qrcode.QRCode
	if version != nil {
		code, err = qrcode.NewWithForcedVersion(text, *version, recovery)
	} else {
		code, err = qrcode.New(text, recovery)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "qr encoder rejected payload", goerr.V("level", level), goerr.V("length", len(text)))
	}

	code.DisableBorder = true
	return code.Bitmap(), nil
}

func recoveryLevel(level domain.ECCLevel) (qrcode.RecoveryLevel, error) {
	switch level {
	case domain.ECCLow:
		return qrcode.Low, nil
	case domain.ECCMedium:
		return qrcode.Medium, nil
	case domain.ECCQuartile, "":
		return qrcode.High, nil
	case domain.ECCHigh:
		return qrcode.Highest, nil
	}
	return 0, goerr.New("unknown error correction level", goerr.V("level", level))
}

var _ ports.QREncoder = (*QRCode)(nil)
