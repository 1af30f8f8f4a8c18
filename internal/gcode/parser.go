package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of toolpath movement in a parsed program.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning (no cutting)
	MoveFeed                    // G1: linear feed in the XY plane
	MovePlunge                  // G1 with Z decreasing, no XY motion
	MoveRetract                 // G0/G1 with Z increasing, no XY motion
	MoveArc                     // G2/G3 circular or helical interpolation
)

// Move represents a single parsed movement.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	I, J     float64 // Arc center offset from the start point
	CW       bool    // Arc direction, valid when Type is MoveArc
	FeedRate float64
}

// Parse parses program text into a slice of structured moves. It tracks
// absolute position state and classifies each motion command by its movement
// characteristics. Compensation words (G40/G41/G42) on a line do not change
// the classification of the move carrying them.
func Parse(code string) []Move {
	var moves []Move

	// Current machine state
	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	wordRe := regexp.MustCompile(`([XYZIJF])([-]?\d+\.?\d*)`)

	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Strip comments (semicolon or parenthetical)
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		for {
			start := strings.Index(line, "(")
			if start < 0 {
				break
			}
			end := strings.Index(line, ")")
			if end <= start {
				line = line[:start]
				break
			}
			line = line[:start] + line[end+1:]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		isRapid := hasMotionWord(upper, "0")
		isFeed := hasMotionWord(upper, "1")
		isArcCW := hasMotionWord(upper, "2")
		isArcCCW := hasMotionWord(upper, "3")

		if !isRapid && !isFeed && !isArcCW && !isArcCCW {
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		iOff, jOff := 0.0, 0.0
		for _, m := range wordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "I":
				iOff = val
			case "J":
				jOff = val
			case "F":
				newFeed = val
			}
		}

		move := Move{
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      newX,
			ToY:      newY,
			ToZ:      newZ,
			I:        iOff,
			J:        jOff,
			FeedRate: newFeed,
		}
		switch {
		case isArcCW, isArcCCW:
			move.Type = MoveArc
			move.CW = isArcCW
		default:
			move.Type = classifyMove(isRapid, curZ, newZ, curX, curY, newX, newY)
		}
		moves = append(moves, move)

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// hasMotionWord reports whether the line contains the motion word G<digit>
// or G0<digit>, as a whole word. This avoids matching G20, G28, G40 and
// similar codes when looking for G2.
func hasMotionWord(upper, digit string) bool {
	for _, word := range strings.Fields(upper) {
		if word == "G"+digit || word == "G0"+digit {
			return true
		}
	}
	return false
}

// classifyMove determines the MoveType for linear motion.
func classifyMove(isRapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case isRapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.0001 && !hasXY:
		return MovePlunge
	case zDelta > 0.0001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

// CompBalance counts compensation engage (G41/G42) and cancel (G40) words in
// a program, ignoring comment text. It returns engaged, cancelled counts.
func CompBalance(code string) (on, off int) {
	for _, line := range strings.Split(code, "\n") {
		if idx := strings.Index(line, "("); idx >= 0 {
			line = line[:idx]
		}
		for _, word := range strings.Fields(strings.ToUpper(line)) {
			switch word {
			case "G41", "G42":
				on++
			case "G40":
				off++
			}
		}
	}
	return on, off
}
