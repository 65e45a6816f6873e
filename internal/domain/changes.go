// Field-level change tracking.
//
// Every mutable entity has a hand-written DiffFrom comparator producing a
// ChangeSet: the list of fields whose values differ between the previously
// persisted state and the proposed one. The rendered form feeds audit-entry
// descriptions, e.g.
//
//	name: 'Poblacion' → 'Poblacion Norte', captain: none → 'R. Cruz'
//
// An absent value (empty string) renders as the bare literal "none".
// Comparators are explicit per type; no reflection or map-keyed field
// enumeration is involved.
package domain

import "strings"

// FieldChange describes one field whose value changed, with the old and new
// values already rendered as strings.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// String renders the change as "field: 'old' → 'new'", substituting the
// literal none for an absent value.
func (fc FieldChange) String() string {
	return fc.Field + ": " + quoteOrNone(fc.Old) + " → " + quoteOrNone(fc.New)
}

// ChangeSet is an ordered list of field changes. Order follows the struct's
// field declaration so rendered summaries are deterministic.
type ChangeSet []FieldChange

// Empty reports whether no field changed. An empty ChangeSet must never be
// turned into an UPDATE audit entry.
func (cs ChangeSet) Empty() bool { return len(cs) == 0 }

// String joins the individual changes with ", ".
func (cs ChangeSet) String() string {
	parts := make([]string, len(cs))
	for i, fc := range cs {
		parts[i] = fc.String()
	}
	return strings.Join(parts, ", ")
}

func quoteOrNone(v string) string {
	if v == "" {
		return "none"
	}
	return "'" + v + "'"
}

// diff appends a FieldChange when old and new differ.
func diff(cs ChangeSet, field, old, new string) ChangeSet {
	if old != new {
		cs = append(cs, FieldChange{Field: field, Old: old, New: new})
	}
	return cs
}

// DiffFrom compares the receiver (proposed state) against the previously
// persisted state and returns the fields that changed.
func (o Official) DiffFrom(old Official) ChangeSet {
	var cs ChangeSet
	cs = diff(cs, "name", old.Name, o.Name)
	cs = diff(cs, "position", old.Position, o.Position)
	cs = diff(cs, "image", old.Image, o.Image)
	return cs
}

// DiffFrom compares the receiver against the previously persisted state.
func (b Barangay) DiffFrom(old Barangay) ChangeSet {
	var cs ChangeSet
	cs = diff(cs, "name", old.Name, b.Name)
	cs = diff(cs, "captain", old.Captain, b.Captain)
	return cs
}

// DiffFrom compares the receiver against the previously persisted state.
func (c SeniorCitizen) DiffFrom(old SeniorCitizen) ChangeSet {
	var cs ChangeSet
	cs = diff(cs, "osca id", old.OscaID, c.OscaID)
	cs = diff(cs, "last name", old.LastName, c.LastName)
	cs = diff(cs, "first name", old.FirstName, c.FirstName)
	cs = diff(cs, "middle name", old.MiddleName, c.MiddleName)
	cs = diff(cs, "suffix", old.Suffix, c.Suffix)
	cs = diff(cs, "birth date", old.BirthDate, c.BirthDate)
	cs = diff(cs, "gender", old.Gender, c.Gender)
	cs = diff(cs, "civil status", old.CivilStatus, c.CivilStatus)
	cs = diff(cs, "barangay", old.Barangay, c.Barangay)
	cs = diff(cs, "purok", old.Purok, c.Purok)
	cs = diff(cs, "contact number", old.ContactNumber, c.ContactNumber)
	cs = diff(cs, "status", old.Status, c.Status)
	cs = diff(cs, "photo", old.Photo, c.Photo)
	return cs
}

// DiffFrom compares the receiver against the previously persisted state.
// The API key is masked in the rendered change list; the audit trail records
// that it changed, not its value.
func (s SmsCredential) DiffFrom(old SmsCredential) ChangeSet {
	var cs ChangeSet
	cs = diff(cs, "api key", maskKey(old.ApiKey), maskKey(s.ApiKey))
	cs = diff(cs, "sender name", old.SenderName, s.SenderName)
	return cs
}

// maskKey keeps the last four characters of a credential visible.
func maskKey(k string) string {
	if k == "" {
		return ""
	}
	if len(k) <= 4 {
		return "****"
	}
	return "****" + k[len(k)-4:]
}
