package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Side identifies which way an incoming order trades.
type Side int

const (
	NoSide Side = iota
	Buy
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide maps request text onto a Side. Anything unrecognized is NoSide.
func ParseSide(raw string) Side {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy":
		return Buy
	case "sell":
		return Sell
	default:
		return NoSide
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed := ParseSide(raw)
	if parsed == NoSide {
		return fmt.Errorf("unknown order side %q", raw)
	}

	*s = parsed
	return nil
}
