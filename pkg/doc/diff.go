package doc

import "github.com/sergi/go-diff/diffmatchpatch"

// Diff computes a minimal ChangeSet that transforms old into new.
// Hosts that only observe whole-document replacements (for example a file
// watcher) can use this to synthesize proper transactions.
func Diff(oldText, newText string) ChangeSet {
	if oldText == newText {
		return ChangeSet{}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	dmp.DiffCleanupEfficiency(diffs)

	var changes []Change
	pos := 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += len(d.Text)
		case diffmatchpatch.DiffDelete:
			insert := ""
			// A delete immediately followed by an insert is one replacement.
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				insert = diffs[i+1].Text
				i++
			}
			changes = append(changes, Change{From: pos, To: pos + len(d.Text), Insert: insert})
			pos += len(d.Text)
		case diffmatchpatch.DiffInsert:
			changes = append(changes, Change{From: pos, To: pos, Insert: d.Text})
		}
	}

	cs, err := NewChangeSet(changes...)
	if err != nil {
		// DiffMain yields ordered, disjoint edits; reaching this means a bug
		// in the translation above, not in caller input.
		panic(err)
	}
	return cs
}
