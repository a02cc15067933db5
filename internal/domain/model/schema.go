package model

// FieldType is the declared type of a Notion database property.
type FieldType string

const (
	FieldTypeTitle    FieldType = "title"
	FieldTypeURL      FieldType = "url"
	FieldTypeRichText FieldType = "rich_text"
)

// Field is a single named property declared by a collection.
type Field struct {
	Name string
	Type FieldType
}

// Schema is the ordered list of properties declared by a collection. Order
// matches the document order of the API response, so "first title field"
// is deterministic.
type Schema []Field

// TitleField returns the name of the first title-typed field. Notion
// databases are expected to declare exactly one, but the schema is not
// trusted on that point: zero title fields yields ok=false, never a panic.
func (s Schema) TitleField() (string, bool) {
	for _, f := range s {
		if f.Type == FieldTypeTitle {
			return f.Name, true
		}
	}
	return "", false
}

// HasTitleType reports whether the named field exists and is title-typed.
// Used to verify the user-configured title property hint before trusting it.
func (s Schema) HasTitleType(name string) bool {
	for _, f := range s {
		if f.Name == name {
			return f.Type == FieldTypeTitle
		}
	}
	return false
}

// ResolveURLField returns desired only when that field exists in the schema
// AND is url-typed. A hint naming a wrong-typed field resolves to ok=false
// so the writer never targets a type-mismatched property.
func (s Schema) ResolveURLField(desired string) (string, bool) {
	for _, f := range s {
		if f.Name == desired {
			if f.Type == FieldTypeURL {
				return desired, true
			}
			return "", false
		}
	}
	return "", false
}
