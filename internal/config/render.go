package config

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# docSmith configuration (TOML)\n")

	opts := GetConfigOptions()
	topLevel := make([]ConfigOption, 0, len(opts))
	sections := make(map[string][]ConfigOption)
	sectionOrder := make([]string, 0)

	for _, o := range opts {
		if !strings.Contains(o.Key, ".") {
			topLevel = append(topLevel, o)
			continue
		}
		parts := strings.SplitN(o.Key, ".", 2)
		section := parts[0]
		if _, ok := sections[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{
			Key:     parts[1],
			Default: o.Default,
			Comment: o.Comment,
		})
	}

	for _, o := range topLevel {
		writeTOMLOption(&b, o.Key, o.Default, o.Comment)
	}

	for _, section := range sectionOrder {
		opts := sections[section]
		if len(opts) == 0 {
			continue
		}
		b.WriteString("[" + section + "]\n")
		for _, o := range opts {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// UpdateTOML merges defaults into an existing TOML string and comments out unknown keys.
func UpdateTOML(existing string) (string, bool) {
	lines := strings.Split(existing, "\n")
	opts := GetConfigOptions()

	known := make(map[string]ConfigOption, len(opts))
	for _, o := range opts {
		known[o.Key] = o
	}

	existingKeys := make(map[string]bool)
	// sectionEnd maps a section already in the file to the index in out just
	// past its last line; "" is the top level.
	sectionEnd := map[string]int{}
	firstHeader := -1
	currentSection := ""
	out := make([]string, 0, len(lines))
	changed := false

	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			currentSection = strings.TrimSpace(trim[1 : len(trim)-1])
			if firstHeader == -1 {
				firstHeader = len(out)
			}
			out = append(out, line)
			sectionEnd[currentSection] = len(out)
			continue
		}
		if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
			out = append(out, line)
			continue
		}
		key, ok := parseTOMLKey(line)
		if !ok {
			out = append(out, line)
			continue
		}
		fullKey := key
		if currentSection != "" {
			fullKey = currentSection + "." + key
		}
		existingKeys[fullKey] = true
		if _, ok := known[fullKey]; !ok {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"# OUTDATED: option removed from config schema")
			out = append(out, indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
			continue
		}
		out = append(out, line)
		sectionEnd[currentSection] = len(out)
	}
	if firstHeader == -1 {
		firstHeader = len(out)
	}

	missing := make(map[string][]ConfigOption)
	sectionOrder := make([]string, 0)
	for _, o := range opts {
		if existingKeys[o.Key] {
			continue
		}
		section, key := "", o.Key
		if strings.Contains(o.Key, ".") {
			parts := strings.SplitN(o.Key, ".", 2)
			section, key = parts[0], parts[1]
		}
		if _, ok := missing[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		missing[section] = append(missing[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	// Keys for sections that already exist go inside them, top-level keys go
	// before the first table, and new sections are appended.
	type insertion struct {
		at    int
		lines []string
	}
	var inserts []insertion
	var appended []string
	for _, section := range sectionOrder {
		var block []string
		for _, o := range missing[section] {
			writeTOMLOptionLines(&block, o.Key, o.Default, o.Comment)
		}
		switch end, ok := sectionEnd[section]; {
		case section == "":
			inserts = append(inserts, insertion{at: firstHeader, lines: block})
		case ok:
			inserts = append(inserts, insertion{at: end, lines: block})
		default:
			appended = append(appended, "["+section+"]")
			appended = append(appended, block...)
		}
	}
	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].at > inserts[j].at })
	for _, ins := range inserts {
		out = slices.Insert(out, ins.at, ins.lines...)
	}
	if len(appended) > 0 {
		out = append(out, "", "# Added by config update")
		out = append(out, appended...)
	}
	return strings.Join(out, "\n"), true
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") {
		return "", false
	}
	if strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

// formatTOMLValue renders a default value as a TOML literal.
func formatTOMLValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v), true
	case bool, int, int64, float64:
		return fmt.Sprintf("%v", v), true
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]", true
	default:
		return "", false
	}
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	lit, ok := formatTOMLValue(value)
	if !ok {
		return
	}
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	b.WriteString(key + " = " + lit + "\n\n")
}

func writeTOMLOptionLines(lines *[]string, key string, value any, comment string) {
	lit, ok := formatTOMLValue(value)
	if !ok {
		return
	}
	if comment != "" {
		*lines = append(*lines, "# "+comment)
	}
	*lines = append(*lines, key+" = "+lit, "")
}
