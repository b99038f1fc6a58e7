package interpreter

import (
	"fmt"
	"strings"
)

// Direction selects one of the three placement slots of a physical feature.
type Direction int

const (
	Left Direction = iota
	Right
	Above
)

// String returns the lower-case slot name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Above:
		return "above"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Opposite returns the reciprocal direction. Above has none and maps to itself.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// ParseDirection parses "left", "right" or "above" (also "upper").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "above", "upper":
		return Above, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (must be left, right or above)", s)
	}
}
