// Package markup renders the inline tag markup found in source text.
//
// Source prose embeds tags of the form {@tag body|arg|display}. Dice and
// attack tags become their readable equivalents, cross-reference tags
// collapse to the referenced name or its display override, and nested
// entry nodes (lists, tables, insets) are flattened into a single string.
//
// Rendered text is also mined for values that only exist in prose:
//
//	values := markup.ExtractStructuredValues(text, markup.DamageDice)
//	for _, v := range values {
//	    fmt.Println(v.Dice, v.DamageType)
//	}
package markup
