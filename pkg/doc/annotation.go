package doc

// AnnotationKey identifies a piece of transaction metadata.
// Packages that attach metadata should define their own keys as constants.
type AnnotationKey string

// UserEventKey carries user-intent metadata on a transaction, such as
// "input.type", "input.paste", or "delete.backward". Consumers can use it to
// apply equivalent semantics instead of a generic text splice.
const UserEventKey AnnotationKey = "userEvent"

// Annotation is a typed key/value pair of transaction metadata.
// Annotations describe a transaction; they never alter its change set.
type Annotation struct {
	Key   AnnotationKey
	Value any
}

// UserEvent builds the standard user-intent annotation.
func UserEvent(event string) Annotation {
	return Annotation{Key: UserEventKey, Value: event}
}
