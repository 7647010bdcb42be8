package run

import (
	"fmt"
	"regexp"
	"strings"
)

// fullSHALength is the length of a complete commit hash. A ref of any other
// length is never treated as already pinned, even if it is a valid short
// hash.
const fullSHALength = 40

// Decision pairs a reference with its resolution outcome and the replacement
// line. It is only materialized when the reference is not opted out and the
// resolution differs from the current state.
type Decision struct {
	Reference *Reference
	Resolved  *ResolvedVersion
	NewLine   string
}

// newDecision returns nil when the reference is already pinned to the
// resolved version and no rewrite is needed.
func newDecision(ref *Reference, rv *ResolvedVersion) *Decision {
	if !needsRewrite(ref, rv) {
		return nil
	}
	return &Decision{
		Reference: ref,
		Resolved:  rv,
		NewLine:   buildLine(ref, rv),
	}
}

// needsRewrite implements the already-pinned rule. A ref is treated as
// pinned only if its length matches a full commit hash. A pinned ref is left
// alone when it equals the resolved hash verbatim, or when the version in
// the trailing comment normalizes equal to the resolved display version.
func needsRewrite(ref *Reference, rv *ResolvedVersion) bool {
	if len(ref.CurrentRef) != fullSHALength {
		return true
	}
	if ref.CurrentRef == rv.CommitHash {
		return false
	}
	if av := annotationVersion(ref.Comment); av != "" && normalizeVersion(av) == normalizeVersion(rv.DisplayVersion) {
		return false
	}
	return true
}

// annotationVersionPattern extracts the version a trailing comment encodes,
// e.g. "tag v4.2.2", "tag=v3", "v4", or a bare "4.2.2".
var annotationVersionPattern = regexp.MustCompile(`^(?:tag[= ][ \t]*)?(v?\d\S*)`)

func annotationVersion(comment string) string {
	m := annotationVersionPattern.FindStringSubmatch(strings.TrimSpace(comment))
	if m == nil {
		return ""
	}
	return m[1]
}

// normalizeVersion ensures a leading "v" so that "4.2.2" and "v4.2.2"
// compare equal.
func normalizeVersion(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// buildLine renders the rewritten line. The reference's full path is always
// preserved; only the ref and the trailing annotation are replaced.
func buildLine(ref *Reference, rv *ResolvedVersion) string {
	prefix := ref.Indent
	if ref.ListItem {
		prefix += "- "
	}
	return fmt.Sprintf("%suses: %s@%s # tag %s", prefix, ref.FullPath, rv.CommitHash, rv.DisplayVersion)
}
