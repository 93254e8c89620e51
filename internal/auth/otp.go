package auth

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"
)

const (
	// OTPTTL is how long an issued reset code stays valid.
	OTPTTL = 15 * time.Minute

	otpMin  = 100000
	otpSpan = 900000
)

// OTPGenerator produces six-digit reset codes.
type OTPGenerator interface {
	Generate() (string, error)
}

// RandomOTP draws codes uniformly from [100000, 999999].
type RandomOTP struct {
	Source io.Reader
}

func (g RandomOTP) Generate() (string, error) {
	src := g.Source
	if src == nil {
		src = rand.Reader
	}
	n, err := rand.Int(src, big.NewInt(otpSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}
