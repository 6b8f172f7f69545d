package service_test

import (
	"context"
	"testing"

	"boardify-backend/internal/apperr"
	"boardify-backend/internal/models"
	"boardify-backend/internal/service"
	"boardify-backend/internal/storage"
	"boardify-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	blobDir  string
	boards   *service.BoardService
	lists    *service.ListService
	cards    *service.CardService
	users    *service.UserService
	owner    *models.User
	member   *models.User
	stranger *models.User
	board    *models.Board
}

// newFixture builds a board owned by "owner" with "member" invited and
// "stranger" unrelated.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db := testutil.OpenDB(t)
	blobDir := t.TempDir()
	blobs, err := storage.NewLocalStore(blobDir)
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		blobDir:  blobDir,
		boards:   service.NewBoardService(db),
		lists:    service.NewListService(db),
		cards:    service.NewCardService(db, blobs),
		users:    service.NewUserService(db),
		owner:    testutil.NewUser(t, db, "owner"),
		member:   testutil.NewUser(t, db, "member"),
		stranger: testutil.NewUser(t, db, "stranger"),
	}

	f.board, err = f.boards.Create(ctx, f.owner.ID, service.CreateBoardInput{Title: "Sprint"})
	require.NoError(t, err)
	_, err = f.boards.Invite(ctx, f.owner.ID, f.board.ID, service.InviteMemberInput{Username: "member"})
	require.NoError(t, err)
	return f
}

func (f *fixture) activityCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Activity{}).Where("board_id = ?", f.board.ID).Count(&n).Error)
	return n
}

func TestCreateBoard(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	boards := service.NewBoardService(db)
	alice := testutil.NewUser(t, db, "alice")

	board, err := boards.Create(ctx, alice.ID, service.CreateBoardInput{Title: "Sprint", Description: "Q1"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, board.OwnerID)
	assert.Equal(t, "Sprint", board.Title)

	var act models.Activity
	require.NoError(t, db.First(&act, "board_id = ?", board.ID).Error)
	assert.Equal(t, models.ActionCreated, act.Action)
	assert.Equal(t, models.EntityBoard, act.EntityType)
	assert.Equal(t, "created board 'Sprint'", act.Description)

	_, err = boards.Create(ctx, alice.ID, service.CreateBoardInput{Title: "  "})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestGetBoardAccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.boards.Get(ctx, f.owner.ID, f.board.ID)
	assert.NoError(t, err)
	_, err = f.boards.Get(ctx, f.member.ID, f.board.ID)
	assert.NoError(t, err)
	_, err = f.boards.Get(ctx, f.stranger.ID, f.board.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.boards.Get(ctx, f.owner.ID, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateBoardRenameLogs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	title := "Sprint 2"
	board, err := f.boards.Update(ctx, f.member.ID, f.board.ID, service.UpdateBoardInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Sprint 2", board.Title)

	var act models.Activity
	err = f.db.Where("board_id = ? AND action = ?", f.board.ID, models.ActionUpdated).First(&act).Error
	require.NoError(t, err)
	assert.Equal(t, "renamed board from 'Sprint' to 'Sprint 2'", act.Description)

	// Description-only updates are not narrated.
	before := f.activityCount(t)
	desc := "new description"
	_, err = f.boards.Update(ctx, f.owner.ID, f.board.ID, service.UpdateBoardInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, before, f.activityCount(t))
}

func TestDeleteBoardCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	list, err := f.lists.Create(ctx, f.owner.ID, service.CreateListInput{Title: "Todo", BoardID: f.board.ID})
	require.NoError(t, err)
	card, err := f.cards.Create(ctx, f.owner.ID, service.CreateCardInput{Title: "Fix bug", ListID: list.ID})
	require.NoError(t, err)
	_, err = f.cards.Assign(ctx, f.owner.ID, card.ID, service.AssignInput{UserID: f.member.ID})
	require.NoError(t, err)
	title := "step one"
	_, err = f.cards.AddChecklistItem(ctx, f.owner.ID, card.ID, service.ChecklistItemInput{Title: &title})
	require.NoError(t, err)

	// Members cannot delete, only the owner.
	err = f.boards.Delete(ctx, f.member.ID, f.board.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, f.boards.Delete(ctx, f.owner.ID, f.board.ID))

	for _, model := range []any{
		&models.Board{}, &models.List{}, &models.Card{}, &models.BoardMember{},
		&models.CardAssignment{}, &models.ChecklistItem{}, &models.Activity{},
	} {
		var n int64
		require.NoError(t, f.db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T rows left after board delete", model)
	}

	// Deleting again reports NotFound, it does not crash.
	err = f.boards.Delete(ctx, f.owner.ID, f.board.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMembersListing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	entries, err := f.boards.Members(ctx, f.member.ID, f.board.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Owner first, synthesized from board ownership.
	assert.Nil(t, entries[0].ID)
	assert.Equal(t, "owner", entries[0].Role)
	assert.Equal(t, f.owner.ID, entries[0].UserID)

	assert.NotNil(t, entries[1].ID)
	assert.Equal(t, models.RoleMember, entries[1].Role)
	assert.Equal(t, f.member.ID, entries[1].UserID)

	_, err = f.boards.Members(ctx, f.stranger.ID, f.board.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestInviteRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Only the owner invites.
	_, err := f.boards.Invite(ctx, f.member.ID, f.board.ID, service.InviteMemberInput{Username: "stranger"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.boards.Invite(ctx, f.owner.ID, f.board.ID, service.InviteMemberInput{Username: "ghost"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.boards.Invite(ctx, f.owner.ID, f.board.ID, service.InviteMemberInput{Username: "member"})
	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)

	// The owner is implicit, never a membership row.
	_, err = f.boards.Invite(ctx, f.owner.ID, f.board.ID, service.InviteMemberInput{Username: "owner"})
	assert.ErrorIs(t, err, apperr.ErrInvalid)

	member, err := f.boards.Invite(ctx, f.owner.ID, f.board.ID, service.InviteMemberInput{Username: "stranger", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, member.Role)

	// The invited user got a notification.
	var n models.Notification
	require.NoError(t, f.db.First(&n, "user_id = ?", f.stranger.ID).Error)
	assert.Equal(t, models.NotificationInvite, n.Type)
	require.NotNil(t, n.RelatedBoardID)
	assert.Equal(t, f.board.ID, *n.RelatedBoardID)
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var row models.BoardMember
	require.NoError(t, f.db.First(&row, "board_id = ? AND user_id = ?", f.board.ID, f.member.ID).Error)

	err := f.boards.RemoveMember(ctx, f.member.ID, f.board.ID, row.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, f.boards.RemoveMember(ctx, f.owner.ID, f.board.ID, row.ID))

	var n int64
	require.NoError(t, f.db.Model(&models.BoardMember{}).Where("board_id = ?", f.board.ID).Count(&n).Error)
	assert.Zero(t, n)

	err = f.boards.RemoveMember(ctx, f.owner.ID, f.board.ID, row.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListBoards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	other, err := f.boards.Create(ctx, f.stranger.ID, service.CreateBoardInput{Title: "Private"})
	require.NoError(t, err)

	owned, err := f.boards.List(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, f.board.ID, owned[0].ID)

	memberOf, err := f.boards.List(ctx, f.member.ID)
	require.NoError(t, err)
	require.Len(t, memberOf, 1)
	assert.Equal(t, f.board.ID, memberOf[0].ID)

	strangers, err := f.boards.List(ctx, f.stranger.ID)
	require.NoError(t, err)
	require.Len(t, strangers, 1)
	assert.Equal(t, other.ID, strangers[0].ID)
}
