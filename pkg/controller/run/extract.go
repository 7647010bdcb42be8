package run

import (
	"regexp"
	"strings"
)

// usesPattern is the entire grammar of a reference line. It recognizes
// optional leading whitespace, an optional sequence item marker, the literal
// `uses:` keyword, a path token without whitespace or `@`, an `@`-delimited
// ref token without whitespace or `#`, and an optional trailing comment.
// Lines not matching this pattern are not action references.
var usesPattern = regexp.MustCompile(`^(?P<indent>[ \t]*)(?P<dash>- )?uses: +(?P<path>[^\s@]+)@(?P<ref>[^\s#]+)(?: +#[ \t]*(?P<comment>.*?))?[ \t\r]*$`)

// reusableWorkflowPattern matches a reusable workflow path such as
// owner/repo/.github/workflows/deploy.yml.
var reusableWorkflowPattern = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)/\.github/workflows/[^/\s]+$`)

// skipMarker opts a reference out of pinning when it appears in the
// trailing comment. Matching is case insensitive.
const skipMarker = "skip-pinning"

// Reference is one action reference occurrence in a workflow file.
// FullPath always begins with RepoOwner/RepoName; the repository identity
// never includes a sub path.
type Reference struct {
	LineIndex   int    // 0-based position in the file, immutable once parsed
	Line        string // verbatim source line
	Indent      string
	ListItem    bool
	RepoOwner   string
	RepoName    string
	FullPath    string // repository identity plus optional sub path, preserved on rewrite
	CurrentRef  string
	Comment     string
	SkipRewrite bool
}

// Repo returns the canonical resolution key (owner/repo).
func (r *Reference) Repo() string {
	return r.RepoOwner + "/" + r.RepoName
}

// ParseReference parses a single line as an action reference.
// It returns nil if the line is not a reference or if no repository
// identity can be derived from the path.
func ParseReference(index int, line string) *Reference {
	matches := usesPattern.FindStringSubmatch(line)
	if matches == nil {
		return nil
	}
	groups := map[string]string{}
	for i, name := range usesPattern.SubexpNames() {
		if name != "" {
			groups[name] = matches[i]
		}
	}
	owner, repo, ok := splitIdentity(groups["path"])
	if !ok {
		return nil
	}
	comment := groups["comment"]
	return &Reference{
		LineIndex:   index,
		Line:        line,
		Indent:      groups["indent"],
		ListItem:    groups["dash"] != "",
		RepoOwner:   owner,
		RepoName:    repo,
		FullPath:    groups["path"],
		CurrentRef:  groups["ref"],
		Comment:     comment,
		SkipRewrite: strings.Contains(strings.ToLower(comment), skipMarker),
	}
}

// ExtractReferences scans workflow text line by line and returns every
// recognized action reference in line order. Extraction is best effort;
// malformed lines are skipped, never reported as errors.
func ExtractReferences(text string) []*Reference {
	lines := strings.Split(text, "\n")
	refs := []*Reference{}
	for i, line := range lines {
		if ref := ParseReference(i, line); ref != nil {
			refs = append(refs, ref)
		}
	}
	return refs
}

// splitIdentity derives the repository identity from a reference path.
// A reusable workflow path (owner/repo/.github/workflows/file) and a sub
// action path (owner/repo/dir/...) both resolve to the first two segments.
// A path from which no owner/repo pair can be derived yields ok == false.
func splitIdentity(path string) (string, string, bool) {
	if m := reusableWorkflowPattern.FindStringSubmatch(path); m != nil {
		return m[1], m[2], true
	}
	parts := strings.Split(path, "/")
	if len(parts) == 2 { //nolint:mnd
		return parts[0], parts[1], true
	}
	if len(parts) > 2 && !strings.Contains(path, ".github/workflows") {
		return parts[0], parts[1], true
	}
	return "", "", false
}
