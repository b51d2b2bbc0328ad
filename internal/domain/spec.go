package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// SpecFileName is the checklist document inside a project directory.
const SpecFileName = "spec.md"

var (
	// uncheckedPattern matches "- [ ] text" with optional indentation.
	uncheckedPattern = regexp.MustCompile(`^\s*- \[ \]\s+(\S.*)$`)
	// checkedPattern matches "- [x] text" or "- [X] text" with optional indentation.
	checkedPattern = regexp.MustCompile(`^\s*- \[[xX]\]\s+(\S.*)$`)
)

// SpecDocument is the ordered list of checklist tasks of a project.
type SpecDocument struct {
	Tasks []Task
}

// ParseSpec parses checklist lines out of a Markdown document.
// Every checklist line, checked or not, advances the ordinal so that
// ordinals survive checkbox flips. Other lines are ignored.
// A document without checklist lines is a configuration error.
func ParseSpec(content string) (*SpecDocument, error) {
	doc := &SpecDocument{}
	ordinal := 0
	for _, line := range strings.Split(content, "\n") {
		description, checked, ok := parseChecklistLine(line)
		if !ok {
			continue
		}
		ordinal++
		doc.Tasks = append(doc.Tasks, Task{
			Hash:        TaskHash(description),
			Description: description,
			Ordinal:     ordinal,
			Checked:     checked,
		})
	}
	if len(doc.Tasks) == 0 {
		return nil, ErrNoTasksInSpec
	}
	return doc, nil
}

// parseChecklistLine extracts the description and checkbox state of a line.
func parseChecklistLine(line string) (description string, checked bool, ok bool) {
	line = strings.TrimRight(line, "\r")
	if m := uncheckedPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), false, true
	}
	if m := checkedPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true, true
	}
	return "", false, false
}

// TotalTasks returns the number of checklist items.
func (d *SpecDocument) TotalTasks() int {
	return len(d.Tasks)
}

// CompletedTasks returns the number of checked items.
func (d *SpecDocument) CompletedTasks() int {
	n := 0
	for _, t := range d.Tasks {
		if t.Checked {
			n++
		}
	}
	return n
}

// FindByHash returns the first task with the given hash.
func (d *SpecDocument) FindByHash(hash string) (Task, bool) {
	for _, t := range d.Tasks {
		if t.Hash == hash {
			return t, true
		}
	}
	return Task{}, false
}

// MarkTaskComplete checks the first unchecked item whose hash matches.
// It returns the rewritten content and whether anything changed.
// Every other byte of the document is preserved. A task that is already
// checked leaves the content untouched.
func MarkTaskComplete(content, hash string) (string, bool, error) {
	lines := strings.Split(content, "\n")
	found := false
	for i, line := range lines {
		description, checked, ok := parseChecklistLine(line)
		if !ok || TaskHash(description) != hash {
			continue
		}
		if checked {
			found = true
			continue
		}
		lines[i] = strings.Replace(line, "- [ ]", "- [x]", 1)
		return strings.Join(lines, "\n"), true, nil
	}
	if found {
		return content, false, nil
	}
	return content, false, fmt.Errorf("%w: %s", ErrTaskNotFound, hash)
}
