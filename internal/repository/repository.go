package repository

import (
	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repositories struct {
	User    UserRepository
	Follow  FollowRepository
	ReadAck ReadAckRepository
	Post    PostRepository
}

func NewRepositories(db *sqlx.DB, mongoDB *mongo.Database, retry Retry) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db, retry),
		Follow:  NewFollowRepository(db, retry),
		ReadAck: NewReadAckRepository(db, retry),
		Post:    NewPostRepository(mongoDB, retry),
	}
}
