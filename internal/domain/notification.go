package domain

import "github.com/google/uuid"

// UnknownActorName replaces the name of a follower, liker or commenter that cannot be resolved.
const UnknownActorName = "Someone"

type NotificationKind string

const (
	NotificationFollow  NotificationKind = "follow"
	NotificationLike    NotificationKind = "like"
	NotificationComment NotificationKind = "comment"
)

// NotificationItem is derived on every read from follow edges and post engagement.
// It is never stored; its ID is what the read-acknowledgment log references.
type NotificationItem struct {
	ID      string           `json:"id"`
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	Read    bool             `json:"read"`
}

func FollowNotificationID(followerID uuid.UUID) string {
	return "follow:" + followerID.String()
}

func LikeNotificationID(postID string, likerID uuid.UUID) string {
	return "like:" + postID + ":" + likerID.String()
}

func CommentNotificationID(postID string, commentID uuid.UUID) string {
	return "comment:" + postID + ":" + commentID.String()
}

// Dismissible reports whether acknowledging an item of this kind removes it from listings.
// Follow items stay visible with read=true; like and comment items disappear.
func (k NotificationKind) Dismissible() bool {
	return k == NotificationLike || k == NotificationComment
}

type MarkReadInput struct {
	NotificationID string `json:"notification_id" validate:"required"`
}
