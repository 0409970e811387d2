// Package labels navigates the skill/label/value tree that extraction
// feeds wrap around raw field strings. Lookups are case-insensitive and
// total: missing paths yield empty values, never errors.
package labels

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// Document is the root of an extraction payload: a list of skills, each
// carrying a label tree of arbitrary depth.
type Document struct {
	Summary []Skill `json:"Summary"`
}

// Skill is one extraction pass over the source document.
type Skill struct {
	SkillName string  `json:"SkillName"`
	Labels    []Label `json:"Labels"`
}

// Label holds values plus nested children and record groups.
type Label struct {
	LabelName   string  `json:"LabelName"`
	Values      []Value `json:"Values"`
	ChildLabels []Label `json:"ChildLabels,omitempty"`
	Groups      []Group `json:"Groups,omitempty"`
}

// Group is a repeated record of labels under a parent label.
type Group struct {
	RecordLabels []Label `json:"RecordLabels"`
}

// Value is a single extracted string.
type Value struct {
	Value string `json:"Value"`
}

// Parse decodes a raw extraction payload.
func Parse(data json.RawMessage) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "labels: decode payload")
	}
	return &doc, nil
}

// usable filters out blank and "n/a" placeholder values.
func usable(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "n/a")
}

func nameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// firstValue returns the label's first usable value.
func firstValue(l Label) string {
	for _, v := range l.Values {
		if usable(v.Value) {
			return strings.TrimSpace(v.Value)
		}
	}
	return ""
}

// findFirst searches labels, their children and their groups recursively.
func findFirst(ls []Label, labelName string) string {
	for _, l := range ls {
		if nameEqual(l.LabelName, labelName) {
			if v := firstValue(l); v != "" {
				return v
			}
		}
		for _, g := range l.Groups {
			if v := findFirst(g.RecordLabels, labelName); v != "" {
				return v
			}
		}
		if v := findFirst(l.ChildLabels, labelName); v != "" {
			return v
		}
	}
	return ""
}

func collectAll(ls []Label, labelName string, out *[]string) {
	for _, l := range ls {
		if nameEqual(l.LabelName, labelName) {
			for _, v := range l.Values {
				if usable(v.Value) {
					*out = append(*out, strings.TrimSpace(v.Value))
				}
			}
		}
		for _, g := range l.Groups {
			collectAll(g.RecordLabels, labelName, out)
		}
		collectAll(l.ChildLabels, labelName, out)
	}
}

// skill returns the named skill block, if present.
func (d *Document) skill(skillName string) (Skill, bool) {
	for _, s := range d.Summary {
		if nameEqual(s.SkillName, skillName) {
			return s, true
		}
	}
	return Skill{}, false
}

// First returns the first usable value for labelName under skillName,
// searching labels, child labels and groups at any depth.
func (d *Document) First(skillName, labelName string) string {
	s, ok := d.skill(skillName)
	if !ok {
		return ""
	}
	return findFirst(s.Labels, labelName)
}

// All returns every usable value for labelName under skillName at any depth.
func (d *Document) All(skillName, labelName string) []string {
	s, ok := d.skill(skillName)
	if !ok {
		return nil
	}
	var out []string
	collectAll(s.Labels, labelName, &out)
	return out
}

// Nested returns the first usable value of childLabel directly under
// topLabel within the named skill.
func (d *Document) Nested(skillName, topLabel, childLabel string) string {
	s, ok := d.skill(skillName)
	if !ok {
		return ""
	}
	for _, l := range s.Labels {
		if !nameEqual(l.LabelName, topLabel) {
			continue
		}
		for _, child := range l.ChildLabels {
			if nameEqual(child.LabelName, childLabel) {
				if v := firstValue(child); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// noteSkills spread the property address across separate labels instead of
// carrying it whole.
var noteSkills = map[string]bool{
	"note extraction": true,
	"1003":            true,
}

// PropertyAddress assembles the property address carried by a skill.
func (d *Document) PropertyAddress(skillName string) string {
	if !noteSkills[strings.ToLower(strings.TrimSpace(skillName))] {
		return d.First(skillName, "Property Address")
	}

	street := d.First(skillName, "Property Address")
	city := d.First(skillName, "Property City")
	state := d.First(skillName, "Property State")
	zip := d.First(skillName, "Property Zip Code")

	return Flatten([]string{street, city, state, zip})
}

// Flatten joins usable values with single spaces.
func Flatten(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if usable(v) {
			parts = append(parts, strings.TrimSpace(v))
		}
	}
	return strings.Join(parts, " ")
}
