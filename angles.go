package qwalk

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// constants are the symbolic angle tokens accepted on input.
var constants = map[string]float64{
	"0":     0,
	"pi/4":  math.Pi / 4,
	"pi/10": math.Pi / 10,
	"pi/20": math.Pi / 20,
}

/*
CheckEntries resolves every token to an angle in radians. A token is either
one of the symbolic constants or a float literal; anything else fails with
an *InvalidAngleError naming the token.
*/
func CheckEntries(tokens []string) ([]float64, error) {
	angles := make([]float64, len(tokens))

	for i, raw := range tokens {
		token := strings.TrimSpace(raw)

		if v, ok := constants[token]; ok {
			angles[i] = v
			continue
		}

		v, err := cast.ToFloat64E(token)
		if err != nil || token == "" || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &InvalidAngleError{Token: token}
		}

		angles[i] = v
	}

	return angles, nil
}

// ParseAngles reads a "theta1,theta2" line.
func ParseAngles(line string) (AnglePair, error) {
	tokens := strings.Split(strings.TrimSpace(line), ",")
	if len(tokens) != 2 {
		return AnglePair{}, ErrAngleCount
	}

	angles, err := CheckEntries(tokens)
	if err != nil {
		return AnglePair{}, err
	}

	return AnglePair{Theta1: angles[0], Theta2: angles[1]}, nil
}
