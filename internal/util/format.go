// Package util provides utility functions for formatting and common operations.
package util

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Base selects the multiplier used by HumanSize.
type Base int

const (
	// Base10 uses powers of 1000 (KB, MB, ...).
	Base10 Base = iota
	// Base2 uses powers of 1024 (KiB, MiB, ...).
	Base2
)

var (
	base10Units = []string{"KB", "MB", "GB", "TB", "PB", "EB", "ZB"}
	base2Units  = []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB"}
)

// HumanSize formats a byte count with two, one or zero decimals for values
// below 10, 100 and the unit multiplier respectively. The value is always
// rounded up at the chosen precision so the printed size never understates
// the byte count.
func HumanSize(bytes uint64, base Base) string {
	multiplier := uint64(1000)
	units := base10Units
	if base == Base2 {
		multiplier = 1024
		units = base2Units
	}

	if bytes < multiplier {
		return fmt.Sprintf("%dB", bytes)
	}

	divisor := new(big.Int).SetUint64(1)
	m := new(big.Int).SetUint64(multiplier)
	size := float64(bytes)
	for _, unit := range units {
		size /= float64(multiplier)
		divisor.Mul(divisor, m)
		if size >= float64(multiplier) {
			continue
		}
		precision := 0
		switch {
		case size < 10:
			precision = 2
		case size < 100:
			precision = 1
		}
		return formatCeil(bytes, divisor, precision) + unit
	}

	// Beyond ZB: ceil of the largest unit.
	return formatCeil(bytes, divisor, 0) + units[len(units)-1]
}

// formatCeil renders ceil(bytes/divisor) with precision decimals using exact
// integer arithmetic.
func formatCeil(bytes uint64, divisor *big.Int, precision int) string {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)
	num := new(big.Int).Mul(new(big.Int).SetUint64(bytes), scale)
	q, r := new(big.Int).QuoRem(num, divisor, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	digits := q.String()
	if precision == 0 {
		return digits
	}
	if len(digits) <= precision {
		digits = strings.Repeat("0", precision-len(digits)+1) + digits
	}
	return digits[:len(digits)-precision] + "." + digits[len(digits)-precision:]
}

// FormatSeconds formats seconds as HH:MM:SS.ss.
func FormatSeconds(secs float64) string {
	seconds := math.Mod(secs, 60)
	minutes := math.Mod(math.Floor(secs/60), 60)
	hours := math.Floor(secs / 3600)
	return fmt.Sprintf("%02.0f:%02.0f:%05.2f", hours, minutes, seconds)
}

// FormatBitRate formats bits per second as kilobits per second, rounded half
// away from zero.
func FormatBitRate(bps float64) string {
	return fmt.Sprintf("%d kb/s", int64(math.Round(bps/1000)))
}

// FormatSampleRate formats a sample rate in Hz.
func FormatSampleRate(hz int) string {
	return fmt.Sprintf("%d Hz", hz)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
