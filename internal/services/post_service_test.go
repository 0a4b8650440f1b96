package services

import (
	"context"
	"testing"

	"github.com/llvasconcellos/devconnector/internal/auth"
	"github.com/llvasconcellos/devconnector/internal/utils"
	"github.com/llvasconcellos/devconnector/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newIdentity(name string) auth.Identity {
	return auth.Identity{ID: primitive.NewObjectID(), Name: name}
}

func TestPostCreate(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")

	p, err := svc.Create(ctx, alice, validation.PostInput{Text: "hello world!"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, p.User)
	assert.Equal(t, "hello world!", p.Text)
	assert.Equal(t, "Alice", p.Name) // fallback from token identity
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)
	assert.False(t, p.Date.IsZero())
}

func TestPostCreateRejectsShortText(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), nil)

	_, err := svc.Create(context.Background(), newIdentity("Alice"), validation.PostInput{Text: "short"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnprocessable))

	var ae *utils.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Post length must be between 10 and 300 characters", ae.Fields["text"])
}

func TestPostListNewestFirst(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")

	first, err := svc.Create(ctx, alice, validation.PostInput{Text: "the first post"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, alice, validation.PostInput{Text: "the second post"})
	require.NoError(t, err)

	out, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, second.ID, out[0].ID)
	assert.Equal(t, first.ID, out[1].ID)
}

func TestPostDeleteAuthorOnly(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")
	bob := newIdentity("Bob")

	p, err := svc.Create(ctx, alice, validation.PostInput{Text: "alice owns this post"})
	require.NoError(t, err)

	err = svc.Delete(ctx, bob, p.ID)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	// still there, unmodified
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Text, got.Text)
	assert.Equal(t, alice.ID, got.User)

	require.NoError(t, svc.Delete(ctx, alice, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestToggleLikeRoundTrip(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")
	bob := newIdentity("Bob")

	p, err := svc.Create(ctx, alice, validation.PostInput{Text: "a likeable post"})
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, bob, p.ID)
	require.NoError(t, err)
	require.Len(t, liked.Likes, 1)
	assert.Equal(t, bob.ID, liked.Likes[0].User)

	// toggling again restores the original state
	unliked, err := svc.ToggleLike(ctx, bob, p.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
}

func TestToggleLikePrependsAndKeepsOthers(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")
	bob := newIdentity("Bob")

	p, err := svc.Create(ctx, alice, validation.PostInput{Text: "a likeable post"})
	require.NoError(t, err)

	_, err = svc.ToggleLike(ctx, alice, p.ID)
	require.NoError(t, err)
	got, err := svc.ToggleLike(ctx, bob, p.ID)
	require.NoError(t, err)

	require.Len(t, got.Likes, 2)
	assert.Equal(t, bob.ID, got.Likes[0].User)
	assert.Equal(t, alice.ID, got.Likes[1].User)
}

func TestAddCommentPrependsWithGeneratedID(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")
	bob := newIdentity("Bob")

	p, err := svc.Create(ctx, alice, validation.PostInput{Text: "a commentable post"})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, bob, p.ID, validation.PostInput{Text: "first comment here"})
	require.NoError(t, err)
	got, err := svc.AddComment(ctx, bob, p.ID, validation.PostInput{Text: "second comment here"})
	require.NoError(t, err)

	require.Len(t, got.Comments, 2)
	assert.Equal(t, "second comment here", got.Comments[0].Text)
	assert.Equal(t, "first comment here", got.Comments[1].Text)
	assert.False(t, got.Comments[0].ID.IsZero())
	assert.NotEqual(t, got.Comments[0].ID, got.Comments[1].ID)
	assert.Equal(t, "Bob", got.Comments[0].Name)
	assert.False(t, got.Comments[0].Date.IsZero())
}

func TestAddCommentValidatesText(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")

	p, err := svc.Create(ctx, alice, validation.PostInput{Text: "a commentable post"})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, alice, p.ID, validation.PostInput{Text: "nope"})
	assert.True(t, utils.IsCode(err, utils.CodeUnprocessable))
}

func TestRemoveCommentUnknownIDIsNoOpButStillSaves(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")

	p, err := svc.Create(ctx, alice, validation.PostInput{Text: "a commentable post"})
	require.NoError(t, err)
	withComment, err := svc.AddComment(ctx, alice, p.ID, validation.PostInput{Text: "keep this comment"})
	require.NoError(t, err)

	savesBefore := repo.saves
	got, err := svc.RemoveComment(ctx, p.ID, primitive.NewObjectID())
	require.NoError(t, err)

	assert.Equal(t, savesBefore+1, repo.saves) // re-saved unchanged
	require.Len(t, got.Comments, 1)
	assert.Equal(t, withComment.Comments[0].ID, got.Comments[0].ID)
}

func TestRemoveCommentByID(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, nil)
	ctx := context.Background()
	alice := newIdentity("Alice")

	p, err := svc.Create(ctx, alice, validation.PostInput{Text: "a commentable post"})
	require.NoError(t, err)
	withComment, err := svc.AddComment(ctx, alice, p.ID, validation.PostInput{Text: "remove this comment"})
	require.NoError(t, err)

	got, err := svc.RemoveComment(ctx, p.ID, withComment.Comments[0].ID)
	require.NoError(t, err)
	assert.Empty(t, got.Comments)
}
