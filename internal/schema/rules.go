package schema

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// dicePattern matches dice notation such as 1d6 or 2d8+3
var dicePattern = regexp.MustCompile(`^\d+d\d+([+-]\d+)?$`)

// Dice requires a compact dice expression
var Dice = validation.Match(dicePattern).Error("must be dice notation like 1d6")

// Slug requires a lowercase hyphenated slug
var Slug = validation.Match(regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)).Error("must be a lowercase hyphenated slug")

// OneOf restricts a string to the given values
func OneOf(values ...string) validation.Rule {
	allowed := make([]interface{}, len(values))
	for i, v := range values {
		allowed[i] = v
	}
	return validation.In(allowed...).Error(fmt.Sprintf("must be one of %v", values))
}
