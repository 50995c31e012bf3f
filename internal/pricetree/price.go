package pricetree

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errBadMedian = errors.New("pricetree: median must be an integer or end in .5")

// Price is a fixed-point amount in the smallest currency unit.
type Price int64

func (p Price) String() string {
	return strconv.FormatInt(int64(p), 10)
}

// Median is an exact median: the floor of the mean plus an optional half
// unit. It holds the mean of any two int64 keys without overflowing.
type Median struct {
	floor int64
	half  bool
}

// medianOf returns the mean of lo and hi, where lo <= hi.
func medianOf(lo, hi Price) Median {
	// hi-lo always fits in uint64, and lo+diff/2 lies between lo and hi.
	diff := uint64(hi) - uint64(lo)
	return Median{
		floor: int64(lo) + int64(diff/2),
		half:  diff%2 == 1,
	}
}

// Exact returns the median as a Price when it has no half unit.
func (m Median) Exact() (Price, bool) {
	if m.half {
		return 0, false
	}
	return Price(m.floor), true
}

// Floor rounds the median toward negative infinity.
func (m Median) Floor() Price {
	return Price(m.floor)
}

// HasHalf reports whether the median lies halfway between two units.
func (m Median) HasHalf() bool {
	return m.half
}

func (m Median) Float64() float64 {
	if m.half {
		return float64(m.floor) + 0.5
	}
	return float64(m.floor)
}

func (m Median) String() string {
	if !m.half {
		return strconv.FormatInt(m.floor, 10)
	}
	if m.floor >= 0 {
		return strconv.FormatInt(m.floor, 10) + ".5"
	}
	// floor+0.5 = -(|floor|-1) - 0.5
	abs := -uint64(m.floor)
	return "-" + strconv.FormatUint(abs-1, 10) + ".5"
}

// MarshalJSON encodes the median as a JSON number, e.g. 1195000 or 1195000.5.
func (m Median) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Median) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, half := strings.Cut(s, ".")
	if half && frac != "5" {
		return errBadMedian
	}
	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return errBadMedian
	}

	var floor int64
	switch {
	case !neg:
		if w > math.MaxInt64 {
			return errBadMedian
		}
		floor = int64(w)
	case half:
		// -(w+0.5) = (-w-1) + 0.5
		if w > math.MaxInt64 {
			return errBadMedian
		}
		floor = int64(^w)
	default:
		if w > 1<<63 {
			return errBadMedian
		}
		floor = int64(-w)
	}

	m.floor, m.half = floor, half
	return nil
}
