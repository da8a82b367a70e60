package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/rst"
	"github.com/cxcsds/ahelpgen/internal/util/sets"
)

// xsVersionRequirementRE matches the sentence that only restates an XSPEC
// minimum-version requirement. The fact is carried elsewhere so the body is
// dropped, leaving a title-only entry.
var xsVersionRequirementRE = regexp.MustCompile(`^This model requires XSPEC 12\.\d\d\.\d or later\.$`)

// collapseAllowed lists the symbols known to carry a redundant Changed and
// Added pair for the CIAO 4.14 release; for these the Changed entries are
// dropped at flush. Any other symbol hitting that condition needs review
// before the collapse can be applied.
var collapseAllowed = sets.New("xsagnslim", "xsbwcycl", "xszkerrbb")

// voigtModels get a fixed explanatory body on their Added entry, since the
// docstring itself does not mention the models they replaced.
var voigtModels = sets.New("pseudovoigt1d", "voigt1d")

const voigtAddedText = "The pseudovoigt1d and voigt1d models were added in CIAO 4.13 " +
	"and replace the absorptionvoigt and emissionvoigt models."

// translateRelease maps the internal (Sherpa) release label onto the CIAO
// release it shipped in. Not every internal release maps to a CIAO one, so a
// handful of historical exceptions are spelled out.
func translateRelease(v string) (string, error) {
	toks := strings.Split(v, ".")
	if len(toks) != 3 || toks[0] != "4" {
		return "", errors.Structuref("unexpected release label %q", v)
	}

	switch {
	case toks[2] == "0":
		return toks[0] + "." + toks[1], nil
	case toks[1] == "17":
		return "4.18", nil
	case toks[1] == "16":
		return "4.17", nil
	case toks[1] == "15":
		return "4.16", nil
	case toks[1] == "14":
		return "4.15", nil
	case toks[1] == "13":
		return "4.14", nil
	case v == "4.12.2":
		return "4.13", nil
	case v == "4.10.1":
		return "4.11", nil
	}

	return v, nil
}

// versionStore collects the "added in" and "changed in" annotations found
// while walking one document, for consolidation into a single trailing
// section. Single-call-scoped: recording after the flush is a hard error.
type versionStore struct {
	name    string
	added   []*ahelp.Para
	changed []*ahelp.Para
	titles  sets.Set[string]
	flushed bool

	// releases holds configured translation overrides, checked before the
	// built-in table.
	releases map[string]string
}

// release translates an internal release label, letting configured overrides
// win over the built-in table.
func (s *versionStore) release(v string) (string, error) {
	if r, ok := s.releases[v]; ok {
		return r, nil
	}
	return translateRelease(v)
}

func newVersionStore(name string) *versionStore {
	return &versionStore{name: name, titles: sets.New[string]()}
}

func versionLabel(kind rst.VersionKind) (string, error) {
	switch kind {
	case rst.VersionAdded:
		return "Added", nil
	case rst.VersionChanged:
		return "Changed", nil
	default:
		return "", errors.Newf(errors.CategoryInternal, errors.SeverityFatal, "unknown version kind %d", kind)
	}
}

// Record consumes one version block. The first whitespace-delimited word of
// the first paragraph is the release label; the rest becomes the entry body.
// Consecutive entries sharing a title only carry it once, so repeated
// releases merge visually in the output.
func (s *versionStore) Record(c *converter, block *rst.VersionNote) error {
	if s.flushed {
		return errors.Integrity("version annotation recorded after consolidation")
	}

	label, err := versionLabel(block.Change)
	if err != nil {
		return err
	}

	for _, b := range block.Blocks {
		if _, ok := b.(*rst.Paragraph); !ok {
			return errors.Structuref("version block holds %s, expected paragraph", b.Kind())
		}
	}
	if len(block.Blocks) == 0 {
		return errors.Structure("empty version block")
	}

	head, err := c.renderBlockText(block.Blocks[0])
	if err != nil {
		return err
	}
	word, rest := splitFirstWord(head)

	release, err := s.release(word)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s in CIAO %s", label, release)
	para := &ahelp.Para{}
	if !s.titles.Has(title) {
		para.Title = title
		s.titles.Add(title)
	}
	if rest != "" && !xsVersionRequirementRE.MatchString(rest) {
		para.Text = rest
	}
	s.append(block.Change, para)

	for _, b := range block.Blocks[1:] {
		txt, err := c.renderBlockText(b)
		if err != nil {
			return err
		}
		s.append(block.Change, &ahelp.Para{Text: txt})
	}

	return nil
}

// RecordComment recovers a version directive that lost its second colon and
// was parsed as a comment ("versionadded: 4.12.2" rather than
// "versionadded:: 4.12.2").
func (s *versionStore) RecordComment(c *converter, cm *rst.Comment) error {
	if s.flushed {
		return errors.Integrity("version annotation recorded after consolidation")
	}

	idx := strings.Index(cm.Text, ":")
	if idx <= 0 {
		return errors.Structuref("unexpected comment %q", cm.Text)
	}

	var change rst.VersionKind
	switch cm.Text[:idx] {
	case "versionadded":
		change = rst.VersionAdded
	case "versionchanged":
		change = rst.VersionChanged
	default:
		return errors.Structuref("unexpected comment %q", cm.Text)
	}
	label, err := versionLabel(change)
	if err != nil {
		return err
	}

	rest := cm.Text[idx+1:]
	toks := strings.SplitN(rest, "\n", 2)

	release, err := s.release(strings.TrimSpace(toks[0]))
	if err != nil {
		return err
	}

	para := &ahelp.Para{Title: fmt.Sprintf("%s in CIAO %s", label, release)}
	if len(toks) == 2 {
		para.Text = toks[1]
	}
	s.append(change, para)

	return nil
}

func (s *versionStore) append(change rst.VersionKind, p *ahelp.Para) {
	if change == rst.VersionChanged {
		s.changed = append(s.changed, p)
	} else {
		s.added = append(s.added, p)
	}
}

// Flush consolidates everything into one section, or nil when no entries
// were recorded. Changed entries come first, then Added, so the most recent
// edits appear before the introduction notice. A redundant Changed+Added
// pair for CIAO 4.14 collapses to Added-only for a fixed set of symbols;
// anywhere else the condition is a hard error.
func (s *versionStore) Flush() (*ahelp.Adesc, error) {
	if s.flushed {
		return nil, errors.Integrity("version store flushed twice")
	}
	s.flushed = true

	if s.hasTitle(s.changed, "Changed in CIAO 4.14") && s.hasTitle(s.added, "Added in CIAO 4.14") {
		if !collapseAllowed.Has(s.name) {
			return nil, errors.Integrityf("unreviewed Changed+Added pair for CIAO 4.14 on %q", s.name)
		}
		s.changed = nil
	}

	out := &ahelp.Adesc{Title: "Changes in CIAO"}
	for _, p := range s.changed {
		out.Append(p)
	}
	for _, p := range s.added {
		if voigtModels.Has(s.name) {
			if p.Text != "" {
				return nil, errors.Integrityf("unexpected body on Added entry for %q", s.name)
			}
			p.Text = voigtAddedText
		}
		out.Append(p)
	}

	if len(out.Elements) == 0 {
		return nil, nil
	}
	return out, nil
}

func (s *versionStore) hasTitle(ps []*ahelp.Para, title string) bool {
	for _, p := range ps {
		if p.Title == title {
			return true
		}
	}
	return false
}

// splitFirstWord returns the first whitespace-delimited token and the
// remainder with leading whitespace trimmed.
func splitFirstWord(s string) (string, string) {
	s = strings.TrimLeft(s, " \t\n")
	idx := strings.IndexAny(s, " \t\n")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimLeft(s[idx:], " \t\n")
}
