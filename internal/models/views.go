package models

// View shapes returned by the query engine. Summary and detail variants are
// distinct types chosen by the call site instead of one shape with fields
// conditionally removed.

// ShortUser is the minimal profile shape used in listings.
type ShortUser struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// ShortUserOf reduces a user to its listing shape.
func ShortUserOf(u *User) ShortUser {
	return ShortUser{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.AvatarOrDefault(),
	}
}

// Profile is the full profile view, enriched with follower counts and the
// viewer's own relation to the target.
//
// FollowedByMeStatus is nil, "self", "Accepted" or "Pending". Rejected or
// absent edges yield nil.
type Profile struct {
	Username           string  `json:"username"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Description        string  `json:"description"`
	Avatar             string  `json:"avatar"`
	IsOpened           bool    `json:"is_opened"`
	NFollowers         int     `json:"nfollowers"`
	NFollows           int     `json:"nfollows"`
	FollowedByMeStatus *string `json:"followed_by_me_status"`
}

// ProfileOf builds a profile view from an annotated user record.
// viewerID is zero for anonymous viewers.
func ProfileOf(u *User, viewerID uint) Profile {
	p := Profile{
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Description: u.Description,
		Avatar:      u.AvatarOrDefault(),
		IsOpened:    u.IsOpened,
		NFollowers:  u.NFollowers,
		NFollows:    u.NFollows,
	}

	if viewerID == u.ID && viewerID != 0 {
		status := "self"
		p.FollowedByMeStatus = &status
		return p
	}

	switch SubscriptionStatus(u.FollowedByMe) {
	case SubscriptionAccepted, SubscriptionPending:
		status := SubscriptionStatus(u.FollowedByMe).Display()
		p.FollowedByMeStatus = &status
	}

	return p
}

// CommentView is the comment shape attached to posts and comment listings.
type CommentView struct {
	ID    uint      `json:"id"`
	Owner ShortUser `json:"owner"`
	Text  string    `json:"text"`
}

// CommentViewOf reduces a comment to its API shape.
func CommentViewOf(cm *Comment) CommentView {
	return CommentView{
		ID:    cm.ID,
		Owner: ShortUserOf(&cm.User),
		Text:  cm.Text,
	}
}

// PostSummary is the post shape used in listings and the feed, carrying a
// bounded window of the most recent comments.
type PostSummary struct {
	ID              uint          `json:"id"`
	Owner           ShortUser     `json:"owner"`
	Picture         string        `json:"picture"`
	Description     string        `json:"description"`
	NLikes          int           `json:"nlikes"`
	IsLikedByMe     bool          `json:"is_liked_by_me"`
	PreviewComments []CommentView `json:"preview_comments"`
}

// PostDetail is the single-post shape. It has no comment previews; clients
// page through comments separately.
type PostDetail struct {
	ID          uint      `json:"id"`
	Owner       ShortUser `json:"owner"`
	Picture     string    `json:"picture"`
	Description string    `json:"description"`
	NLikes      int       `json:"nlikes"`
	IsLikedByMe bool      `json:"is_liked_by_me"`
}

// PostDetailOf builds a detail view from an annotated post record.
func PostDetailOf(p *Post) PostDetail {
	return PostDetail{
		ID:          p.ID,
		Owner:       ShortUserOf(&p.User),
		Picture:     p.Picture,
		Description: p.Description,
		NLikes:      p.NLikes,
		IsLikedByMe: p.IsLikedByMe,
	}
}

// PostSummaryOf builds a summary view from an annotated post record and its
// preview comment window (oldest first).
func PostSummaryOf(p *Post, previews []CommentView) PostSummary {
	if previews == nil {
		previews = []CommentView{}
	}
	return PostSummary{
		ID:              p.ID,
		Owner:           ShortUserOf(&p.User),
		Picture:         p.Picture,
		Description:     p.Description,
		NLikes:          p.NLikes,
		IsLikedByMe:     p.IsLikedByMe,
		PreviewComments: previews,
	}
}
