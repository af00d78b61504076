package location

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat menerima angka JSON maupun string angka ("12.91") —
// client mobile lama mengirim koordinat sebagai string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return errors.New("nilai kosong")
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("bukan angka valid: %q", s)
	}
	// ParseFloat menerima "NaN"/"Inf"; dua-duanya lolos perbandingan range
	// biasa, jadi tolak di sini
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("bukan angka valid: %q", s)
	}
	*f = FlexFloat(v)
	return nil
}

type UpdateLocationRequest struct {
	DriverID string     `json:"driverId"`
	Lat      *FlexFloat `json:"lat"`
	Lng      *FlexFloat `json:"lng"`
}

type UpdateLocationDetails struct {
	StoredInCache              bool `json:"storedInCache"`
	StoredInDurable            bool `json:"storedInDurable"`
	NextDurableCommitInSeconds int  `json:"nextDurableCommitInSeconds"`
}
