package markup

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects how formatting tags are rendered
type Mode string

const (
	// ModePlain drops all formatting
	ModePlain Mode = "plain"
	// ModeMarkdown keeps bold, italic and heading markers
	ModeMarkdown Mode = "markdown"
)

// ParseMode returns the mode named by s, defaulting to plain
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePlain:
		return ModePlain, nil
	case ModeMarkdown:
		return ModeMarkdown, nil
	default:
		return ModePlain, fmt.Errorf("unknown markup mode %q", s)
	}
}

// Result is rendered display text
type Result struct {
	Text string
}

// Processor renders entries in one mode. It holds no per-call state and is
// safe for concurrent use.
type Processor struct {
	mode Mode
}

// New creates a processor for the given mode
func New(mode Mode) *Processor {
	if mode != ModeMarkdown {
		mode = ModePlain
	}
	return &Processor{mode: mode}
}

// Mode returns the processor's rendering mode
func (p *Processor) Mode() Mode {
	return p.mode
}

// Process renders entries (a string, a node or an array of either) into a
// single string. Top-level blocks are separated by blank lines.
func (p *Processor) Process(entries any) Result {
	return Result{Text: strings.TrimSpace(p.block(entries))}
}

// Text resolves the tags in a single string
func (p *Processor) Text(s string) string {
	return strings.TrimSpace(p.renderText(s))
}

func (p *Processor) block(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return p.renderText(t)
	case []any:
		return p.join(t, "\n\n")
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return p.join(items, "\n\n")
	case map[string]any:
		return p.node(t)
	default:
		return fmt.Sprint(t)
	}
}

func (p *Processor) join(items []any, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(p.block(item)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func (p *Processor) node(n map[string]any) string {
	nodeType, _ := n["type"].(string)
	name, _ := n["name"].(string)
	name = p.renderText(name)

	switch nodeType {
	case "list":
		return p.list(n)
	case "table":
		return p.table(n)
	case "inline", "inlineBlock":
		return p.inline(n["entries"])
	case "quote":
		return p.quote(n)
	case "section", "inset", "insetReadaloud", "variant", "variantInner", "variantSub":
		body := p.block(n["entries"])
		if name == "" {
			return body
		}
		if p.mode == ModeMarkdown {
			return "### " + name + "\n\n" + body
		}
		return name + "\n\n" + body
	case "item", "itemSub", "itemSpell":
		body := p.block(firstOf(n, "entry", "entries"))
		return p.leadIn(name, body)
	case "abilityDc":
		return fmt.Sprintf("%s save DC = 8 + your proficiency bonus + your %s modifier", name, p.attributes(n))
	case "abilityAttackMod":
		return fmt.Sprintf("%s attack modifier = your proficiency bonus + your %s modifier", name, p.attributes(n))
	case "refClassFeature", "refSubclassFeature", "refOptionalfeature", "refFeat":
		return refName(n)
	case "link":
		text, _ := n["text"].(string)
		return text
	case "image", "gallery", "hr", "statblock", "statblockInline", "flowchart":
		return ""
	}

	body := p.block(firstOf(n, "entries", "entry", "items"))
	return p.leadIn(name, body)
}

func (p *Processor) leadIn(name, body string) string {
	if name == "" {
		return body
	}
	lead := strings.TrimSuffix(name, ".") + "."
	if p.mode == ModeMarkdown {
		lead = "**" + lead + "**"
	}
	if body == "" {
		return lead
	}
	return lead + " " + body
}

func (p *Processor) list(n map[string]any) string {
	items, _ := n["items"].([]any)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(p.block(item)); s != "" {
			lines = append(lines, "- "+s)
		}
	}
	return strings.Join(lines, "\n")
}

func (p *Processor) inline(entries any) string {
	items, ok := entries.([]any)
	if !ok {
		return p.block(entries)
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString(p.block(item))
	}
	return b.String()
}

func (p *Processor) quote(n map[string]any) string {
	body := p.block(n["entries"])
	if by, ok := n["by"].(string); ok && by != "" {
		body += "\n- " + p.renderText(by)
	}
	if p.mode != ModeMarkdown {
		return body
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func (p *Processor) table(n map[string]any) string {
	var lines []string
	if caption, ok := n["caption"].(string); ok && caption != "" {
		lines = append(lines, p.renderText(caption))
	}

	labels := p.cells(n["colLabels"])
	if len(labels) > 0 {
		lines = append(lines, p.row(labels))
		if p.mode == ModeMarkdown {
			sep := make([]string, len(labels))
			for i := range sep {
				sep[i] = "---"
			}
			lines = append(lines, p.row(sep))
		}
	}

	rows, _ := n["rows"].([]any)
	for _, r := range rows {
		if cells := p.cells(r); len(cells) > 0 {
			lines = append(lines, p.row(cells))
		}
	}
	return strings.Join(lines, "\n")
}

func (p *Processor) row(cells []string) string {
	if p.mode == ModeMarkdown {
		return "| " + strings.Join(cells, " | ") + " |"
	}
	return strings.Join(cells, " | ")
}

func (p *Processor) cells(v any) []string {
	raw, _ := v.([]any)
	if obj, ok := v.(map[string]any); ok {
		raw, _ = obj["row"].([]any)
	}
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if obj, ok := c.(map[string]any); ok && obj["type"] == "cell" {
			out = append(out, cellText(obj))
			continue
		}
		out = append(out, strings.TrimSpace(p.block(c)))
	}
	return out
}

func cellText(cell map[string]any) string {
	roll, _ := cell["roll"].(map[string]any)
	if exact, ok := roll["exact"].(float64); ok {
		return fmt.Sprintf("%d", int(exact))
	}
	minV, okMin := roll["min"].(float64)
	maxV, okMax := roll["max"].(float64)
	if okMin && okMax {
		return fmt.Sprintf("%d-%d", int(minV), int(maxV))
	}
	return ""
}

func (p *Processor) attributes(n map[string]any) string {
	attrs, _ := n["attributes"].([]any)
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if s, ok := a.(string); ok {
			names = append(names, AbilityName(s))
		}
	}
	return strings.Join(names, " or ")
}

func refName(n map[string]any) string {
	for _, key := range []string{"classFeature", "subclassFeature", "optionalfeature", "feat"} {
		if s, ok := n[key].(string); ok {
			name, _, _ := strings.Cut(s, "|")
			return name
		}
	}
	return ""
}

func firstOf(n map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := n[k]; ok {
			return v
		}
	}
	return nil
}

// walkStrings calls fn for every string reachable from v. Map keys are
// visited in sorted order so results are deterministic.
func walkStrings(v any, fn func(string)) {
	switch t := v.(type) {
	case string:
		fn(t)
	case []any:
		for _, item := range t {
			walkStrings(item, fn)
		}
	case []string:
		for _, s := range t {
			fn(s)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkStrings(t[k], fn)
		}
	}
}
