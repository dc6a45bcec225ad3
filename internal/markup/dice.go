package markup

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
)

// diceNotationRegex matches XdY with an optional flat modifier
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:([+-])(\d+))?$`)

// NormalizeDice validates a dice expression such as "1d6", "2d8 + 3" or
// "1d4-1" and returns it without spaces. Count and size are checked by
// building an rpg-toolkit roll.
func NormalizeDice(expr string) (string, error) {
	compact := strings.ToLower(strings.Join(strings.Fields(expr), ""))
	matches := diceNotationRegex.FindStringSubmatch(compact)
	if matches == nil {
		return "", errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", expr)
	}

	count, err := strconv.Atoi(matches[1])
	if err != nil {
		return "", errors.InvalidArgumentf("invalid dice count in notation: %s", expr)
	}
	size, err := strconv.Atoi(matches[2])
	if err != nil {
		return "", errors.InvalidArgumentf("invalid die size in notation: %s", expr)
	}
	if count <= 0 || size <= 0 {
		return "", errors.InvalidArgumentf("dice count and size must be positive: %s", expr)
	}

	if _, err := dice.NewRoll(count, size); err != nil {
		return "", errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid dice: %s", expr)
	}

	return compact, nil
}
