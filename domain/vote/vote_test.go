package vote

import (
	"braindumpBackend/access"
	"braindumpBackend/auth"
	"braindumpBackend/domain/collection"
	"braindumpBackend/domain/comment"
	"braindumpBackend/domain/item"
	"braindumpBackend/domain/user"
	"braindumpBackend/events"
	"braindumpBackend/priority"
	"braindumpBackend/storage"
	"braindumpBackend/utils"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockVoteRepo struct {
	mock.Mock
}

func (m *mockVoteRepo) Upsert(ctx context.Context, itemId string, userId string, value priority.Priority) error {
	return m.Called(ctx, itemId, userId, value).Error(0)
}
func (m *mockVoteRepo) RecordVote(tx *gorm.DB, itemId string, userId string, value priority.Priority) error {
	return m.Called(tx, itemId, userId, value).Error(0)
}

type mockItemRepo struct {
	item.Repository
	mock.Mock
}

func (m *mockItemRepo) RefreshCounters(ctx context.Context, itemIds ...string) ([]item.CounterDrift, error) {
	args := m.Called(ctx, itemIds)
	drifts, _ := args.Get(0).([]item.CounterDrift)
	return drifts, args.Error(1)
}

type mockItemService struct {
	item.Service
	mock.Mock
}

func (m *mockItemService) Authorize(ctx context.Context, itemId string, principal auth.Principal, action access.Action) (*item.Item, access.Capabilities, error) {
	args := m.Called(ctx, itemId, principal, action)
	i, _ := args.Get(0).(*item.Item)
	return i, access.Capabilities{}, args.Error(1)
}
func (m *mockItemService) Summarize(ctx context.Context, i *item.Item, principal auth.Principal) (item.ItemOut, error) {
	args := m.Called(ctx, i, principal)
	return args.Get(0).(item.ItemOut), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(channelKey string, eventName string, payload any) {
	m.Called(channelKey, eventName, payload)
}

func TestCast(t *testing.T) {
	voter := auth.Authenticated("voter")
	votedItem := &item.Item{ID: "item-1", CollectionID: "collection-1"}

	testCases := []struct {
		name        string
		request     VoteIn
		mockSetup   func(mVotes *mockVoteRepo, mItems *mockItemRepo, mItemService *mockItemService, mNotifier *mockNotifier)
		expectedErr error
	}{
		{
			name:    "records vote and returns fresh summary",
			request: VoteIn{Priority: 3},
			mockSetup: func(mVotes *mockVoteRepo, mItems *mockItemRepo, mItemService *mockItemService, mNotifier *mockNotifier) {
				mItemService.On("Authorize", mock.Anything, "item-1", voter, access.Vote).Return(votedItem, nil)
				mVotes.On("Upsert", mock.Anything, "item-1", "voter", priority.High).Return(nil)
				mItems.On("RefreshCounters", mock.Anything, []string{"item-1"}).Return([]item.CounterDrift{}, nil)
				mItemService.On("Summarize", mock.Anything, votedItem, voter).
					Return(item.ItemOut{ID: "item-1", VoteCount: 2, Score: 2.5, Label: priority.High}, nil)
				mNotifier.On("Notify", events.ChannelKey("collection-1"), events.VoteUpdated,
					VoteEventOut{ItemId: "item-1", VoteCount: 2, Score: 2.5, Label: priority.High}).Return()
			},
		},
		{
			name:        "priority out of range",
			request:     VoteIn{Priority: 4},
			mockSetup:   func(*mockVoteRepo, *mockItemRepo, *mockItemService, *mockNotifier) {},
			expectedErr: utils.ErrValidationError,
		},
		{
			name:    "voting not permitted",
			request: VoteIn{Priority: 1},
			mockSetup: func(mVotes *mockVoteRepo, mItems *mockItemRepo, mItemService *mockItemService, mNotifier *mockNotifier) {
				mItemService.On("Authorize", mock.Anything, "item-1", voter, access.Vote).Return(nil, utils.ErrForbidden)
			},
			expectedErr: utils.ErrForbidden,
		},
		{
			name:    "store failure",
			request: VoteIn{Priority: 1},
			mockSetup: func(mVotes *mockVoteRepo, mItems *mockItemRepo, mItemService *mockItemService, mNotifier *mockNotifier) {
				mItemService.On("Authorize", mock.Anything, "item-1", voter, access.Vote).Return(votedItem, nil)
				mVotes.On("Upsert", mock.Anything, "item-1", "voter", priority.Low).Return(utils.ErrDatabaseError)
			},
			expectedErr: utils.ErrDatabaseError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mVotes := new(mockVoteRepo)
			mItems := new(mockItemRepo)
			mItemService := new(mockItemService)
			mNotifier := new(mockNotifier)
			tc.mockSetup(mVotes, mItems, mItemService, mNotifier)

			service := CreateService(mVotes, mItems, mItemService, mNotifier)
			result, err := service.Cast(context.Background(), "item-1", tc.request, voter)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				mNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, VoteOut{ItemId: "item-1", Priority: priority.High, VoteCount: 2, Score: 2.5, Label: priority.High}, result)
			}
			mVotes.AssertExpectations(t)
			mItems.AssertExpectations(t)
			mNotifier.AssertExpectations(t)
		})
	}
}

func setupVoteDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := storage.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db, &user.User{}, &collection.Collection{}, &item.Item{}, &Vote{}, &comment.Comment{}))

	for _, name := range []string{"voter", "other"} {
		require.NoError(t, db.Create(&user.User{ID: name, Email: name + "@example.com", Name: name}).Error)
	}
	require.NoError(t, db.Omit("Owner").Create(&collection.Collection{ID: "collection-1", Name: "Ideas", OwnerID: "voter"}).Error)
	require.NoError(t, db.Omit("Collection", "Creator").Create(&item.Item{ID: "item-1", CollectionID: "collection-1", Title: "Idea", CreatorID: "voter"}).Error)

	return db
}

func TestUpsert_ReplacesPreviousVote(t *testing.T) {
	db := setupVoteDatabase(t)
	repo := CreateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "item-1", "voter", priority.High))
	require.NoError(t, repo.Upsert(ctx, "item-1", "voter", priority.Low))

	var votes []Vote
	require.NoError(t, db.Find(&votes).Error)
	require.Len(t, votes, 1)
	assert.Equal(t, priority.Low, votes[0].Priority)

	// Votes reference existing items only
	assert.ErrorIs(t, repo.Upsert(ctx, "missing", "voter", priority.Low), utils.ErrDatabaseError)
}

func TestUpsert_ConcurrentVotesKeepOneRow(t *testing.T) {
	db := setupVoteDatabase(t)
	repo := CreateRepository(db)
	ctx := context.Background()

	values := []priority.Priority{priority.Low, priority.Medium, priority.High}

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Upsert(ctx, "item-1", "voter", values[i%len(values)])
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&Vote{}).Where("item_id = ? AND user_id = ?", "item-1", "voter").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestItemUpdate_PreservesCounters(t *testing.T) {
	db := setupVoteDatabase(t)
	statsReader, err := storage.CreateStatsReader(db)
	require.NoError(t, err)

	voteRepo := CreateRepository(db)
	itemRepo := item.CreateRepository(db, statsReader, voteRepo)
	ctx := context.Background()

	stale, err := itemRepo.GetById(ctx, "item-1")
	require.NoError(t, err)

	require.NoError(t, voteRepo.Upsert(ctx, "item-1", "voter", priority.High))
	require.NoError(t, voteRepo.Upsert(ctx, "item-1", "other", priority.Low))
	_, err = itemRepo.RefreshCounters(ctx, "item-1")
	require.NoError(t, err)

	stale.Title = "Renamed idea"
	require.NoError(t, itemRepo.Update(ctx, stale))

	updated, err := itemRepo.GetById(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed idea", updated.Title)
	assert.Equal(t, item.Counters{VoteCount: 2, AvgPriority: 2, CommentCount: 0}, updated.Counters())

	drifts, err := itemRepo.RefreshCounters(ctx, "item-1")
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestItemUpdate_DeletedItemStaysDeleted(t *testing.T) {
	db := setupVoteDatabase(t)
	statsReader, err := storage.CreateStatsReader(db)
	require.NoError(t, err)

	itemRepo := item.CreateRepository(db, statsReader, CreateRepository(db))
	ctx := context.Background()

	stale, err := itemRepo.GetById(ctx, "item-1")
	require.NoError(t, err)
	require.NoError(t, itemRepo.Delete(ctx, stale))

	stale.Title = "Too late"
	assert.ErrorIs(t, itemRepo.Update(ctx, stale), utils.ErrNotFound)

	_, err = itemRepo.GetById(ctx, "item-1")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
