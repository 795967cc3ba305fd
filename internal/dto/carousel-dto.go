package dto

// CarouselRequest selects the post to feature or unfeature. CategoryID is
// optional; when present it narrows the match, mirroring the board UI.
type CarouselRequest struct {
	BoardID    uint  `json:"board_id" validate:"required"`
	PostID     uint  `json:"post_id" validate:"required"`
	CategoryID *uint `json:"category_id,omitempty"`
}
