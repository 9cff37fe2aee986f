package database

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/mariamadly/loomkids-backend-go/models"
)

// SeedAdmin creates the initial admin account from the environment when the
// admins collection is empty. A no-op when credentials are unset or an admin
// already exists.
func (s *Store) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := s.db.Collection(ColAdmins).CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.db.Collection(ColAdmins).InsertOne(ctx, models.Admin{
		ID:        primitive.NewObjectID(),
		Email:     strings.ToLower(email),
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("seeded initial admin account")
	return nil
}
