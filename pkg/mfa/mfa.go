// Package mfa renders second-factor enrollment material for display.
//
// The server issues the shared secret during MFA setup; this package builds
// the otpauth provisioning URI and a scannable QR code image from it so the
// client can show enrollment without any extra round trip.
package mfa

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptySecret indicates the server-issued secret is missing.
	ErrEmptySecret = errors.New("mfa: secret cannot be empty")

	// ErrEmptyAccount indicates the account name is missing.
	ErrEmptyAccount = errors.New("mfa: account name cannot be empty")

	// ErrQRCodeFailed indicates QR image generation failed.
	ErrQRCodeFailed = errors.New("mfa: failed to generate QR code")
)

const defaultIssuer = "FinWise"

// defaultQRSize is the image edge length in pixels.
const defaultQRSize = 256

// ProvisioningURI builds the otpauth URI an authenticator app enrolls from,
// following the Key Uri Format specification.
func ProvisioningURI(secret, accountName, issuer string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrEmptySecret
	}
	if strings.TrimSpace(accountName) == "" {
		return "", ErrEmptyAccount
	}
	if issuer == "" {
		issuer = defaultIssuer
	}

	label := fmt.Sprintf("%s:%s", url.PathEscape(issuer), url.PathEscape(accountName))

	query := url.Values{}
	query.Set("secret", strings.ToUpper(strings.TrimSpace(secret)))
	query.Set("issuer", issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", "6")
	query.Set("period", "30")

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// QRCodePNG renders content as a PNG QR image. A size of zero or less falls
// back to the default edge length.
func QRCodePNG(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrQRCodeFailed
	}
	if size <= 0 {
		size = defaultQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrQRCodeFailed, err)
	}
	return png, nil
}
