package dto

// VideoUpdateRequest represents the fields an operator may change on the
// managed video. Pointer fields distinguish an omitted field (nil) from a
// supplied one. An empty string counts as omitted: the platform would
// otherwise blank the title.
type VideoUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// HasTitle reports whether a non-empty title was supplied.
func (r *VideoUpdateRequest) HasTitle() bool {
	return r != nil && r.Title != nil && *r.Title != ""
}

// HasDescription reports whether a non-empty description was supplied.
func (r *VideoUpdateRequest) HasDescription() bool {
	return r != nil && r.Description != nil && *r.Description != ""
}

// Empty reports whether the request carries nothing to update.
func (r *VideoUpdateRequest) Empty() bool {
	return !r.HasTitle() && !r.HasDescription()
}

// Fields lists the supplied field names in a stable order.
func (r *VideoUpdateRequest) Fields() []string {
	fields := make([]string, 0, 2)
	if r.HasTitle() {
		fields = append(fields, "title")
	}
	if r.HasDescription() {
		fields = append(fields, "description")
	}
	return fields
}
