package service

// row is one tracker as the list UI sees it. The fingerprint folds in
// every displayed attribute so edits surface as row updates.
type row struct {
	id          string
	fingerprint string
}

type section struct {
	title string
	rows  []row
}

// diffSnapshots turns two sectioned snapshots into bracket events.
// Section indexes are absolute: deletes use positions in the old
// snapshot, inserts positions in the new one. Row indexes are relative
// to their section; rows of an inserted or deleted section are covered
// by the section event and not reported individually.
func diffSnapshots(n *Notifier, before, after []section) {
	beforeIdx := make(map[string]int, len(before))
	for i, s := range before {
		beforeIdx[s.title] = i
	}
	afterIdx := make(map[string]int, len(after))
	for i, s := range after {
		afterIdx[s.title] = i
	}

	for i, s := range before {
		if _, ok := afterIdx[s.title]; !ok {
			n.DeleteSection(i)
		}
	}
	for i, s := range after {
		if _, ok := beforeIdx[s.title]; !ok {
			n.InsertSection(i)
		}
	}

	for ai, as := range after {
		bi, ok := beforeIdx[as.title]
		if !ok {
			continue
		}
		diffRows(n, before[bi], bi, as, ai)
	}
}

func diffRows(n *Notifier, before section, beforeSection int, after section, afterSection int) {
	beforeRows := make(map[string]int, len(before.rows))
	for i, r := range before.rows {
		beforeRows[r.id] = i
	}
	afterRows := make(map[string]int, len(after.rows))
	for i, r := range after.rows {
		afterRows[r.id] = i
	}

	for i, r := range before.rows {
		if _, ok := afterRows[r.id]; !ok {
			n.DeleteRow(RowIndex{Section: beforeSection, Row: i})
		}
	}
	for i, r := range after.rows {
		bi, ok := beforeRows[r.id]
		if !ok {
			n.InsertRow(RowIndex{Section: afterSection, Row: i})
			continue
		}
		if before.rows[bi].fingerprint != r.fingerprint {
			n.UpdateRow(RowIndex{Section: afterSection, Row: i})
		}
	}
}
