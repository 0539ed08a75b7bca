package handler

import "github.com/gofiber/fiber/v2"

// Register mounts the authenticated API on router.
func Register(router fiber.Router, h *Handlers, authRequired fiber.Handler) {
	protected := router.Group("", authRequired)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Post("/mark-read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	protected.Get("/feed", h.Feed.GetFeed)

	posts := protected.Group("/posts")
	posts.Post("/", h.Post.Create)
	posts.Put("/:postId", h.Post.Update)
	posts.Delete("/:postId", h.Post.Delete)
	posts.Post("/:postId/like", h.Post.Like)
	posts.Post("/:postId/comments", h.Post.AddComment)
	posts.Put("/:postId/comments/:commentId", h.Post.EditComment)
	posts.Delete("/:postId/comments/:commentId", h.Post.DeleteComment)

	users := protected.Group("/users")
	users.Get("/me", h.Profile.GetMe)
	users.Post("/me", h.Profile.Register)
	users.Put("/me", h.Profile.UpdateProfile)
	users.Delete("/me/bio", h.Profile.DeleteBio)
	users.Post("/me/avatar", h.Profile.UploadAvatar)
	users.Delete("/me/followers/:followerId", h.Social.RemoveFollower)
	users.Get("/suggestions", h.Profile.Suggestions)
	users.Get("/:userId", h.Profile.GetProfile)
	users.Get("/:userId/posts", h.Feed.ListUserPosts)
	users.Get("/:userId/followers", h.Social.ListFollowers)
	users.Get("/:userId/following", h.Social.ListFollowing)
	users.Post("/:userId/follow", h.Social.Follow)
	users.Delete("/:userId/follow", h.Social.Unfollow)
}
