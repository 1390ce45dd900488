package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AznStevy/bme590final/internal/model"
	"github.com/AznStevy/bme590final/internal/testutil"
)

func TestUserService_AddUser(t *testing.T) {
	users := &MockUserStore{}
	service := NewUser(users, testutil.MakeNoopLogger())

	users.On("GetByID", mock.Anything, "u1").Return(model.User{}, model.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID == "u1" && u.Uploads != nil && len(u.Uploads) == 0
	})).Return(model.User{ID: "u1", Uploads: map[string]string{}}, nil)

	user, err := service.AddUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	users.AssertExpectations(t)
}

func TestUserService_AddUser_Duplicate(t *testing.T) {
	users := &MockUserStore{}
	service := NewUser(users, testutil.MakeNoopLogger())

	users.On("GetByID", mock.Anything, "u1").Return(model.User{ID: "u1"}, nil)

	_, err := service.AddUser(context.Background(), "u1")
	assert.ErrorIs(t, err, model.ErrDuplicateUser)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_AddUser_RaceLosesToConcurrentCreate(t *testing.T) {
	users := &MockUserStore{}
	service := NewUser(users, testutil.MakeNoopLogger())

	users.On("GetByID", mock.Anything, "u1").Return(model.User{}, model.ErrNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrDuplicateUser)

	_, err := service.AddUser(context.Background(), "u1")
	assert.ErrorIs(t, err, model.ErrDuplicateUser)
}

func TestUserService_FindUser(t *testing.T) {
	users := &MockUserStore{}
	service := NewUser(users, testutil.MakeNoopLogger())

	stored := model.User{ID: "u1", Uploads: map[string]string{"A": "C"}}
	users.On("GetByID", mock.Anything, "u1").Return(stored, nil)

	user, err := service.FindUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, stored, user)
}

func TestUserService_FindUser_NotFound(t *testing.T) {
	users := &MockUserStore{}
	service := NewUser(users, testutil.MakeNoopLogger())

	users.On("GetByID", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)

	_, err := service.FindUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserService_FindUser_StoreError(t *testing.T) {
	users := &MockUserStore{}
	service := NewUser(users, testutil.MakeNoopLogger())

	users.On("GetByID", mock.Anything, "u1").Return(model.User{}, errors.New("connection reset"))

	_, err := service.FindUser(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}
