package request

// Comment is the create payload. The slug comes from the URL; the
// author is taken from the resolved identity, never from the body.
type Comment struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// CommentEdit is the edit payload.
type CommentEdit struct {
	Content string `json:"content" binding:"required"`
}

// Reaction is the toggle payload.
type Reaction struct {
	Type string `json:"reaction_type" binding:"required,reactiontype"`
}
