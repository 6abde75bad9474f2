package test

import (
	"braindumpBackend/domain/item"
	"braindumpBackend/domain/vote"
	"braindumpBackend/events"
	"braindumpBackend/priority"
	"net/http"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemTitles(items []item.ItemOut) []string {
	return lo.Map(items, func(i item.ItemOut, _ int) string { return i.Title })
}

// === GET ===
func TestGetItems(t *testing.T) {
	server := SetupTestServer(t)
	path := "/brain-dumps/" + server.Data.TeamIdeas.ID + "/items"

	resp := server.Request(t, http.MethodGet, path, server.TokenFor(t, "carol@example.com"), nil)
	require.Equal(t, http.StatusOK, resp.Code)

	items := decodePayload[[]item.ItemOut](t, resp)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Dark mode", "Offline sync", "Keyboard shortcuts"}, itemTitles(items))

	darkMode := items[0]
	assert.Equal(t, 2, darkMode.VoteCount)
	assert.Equal(t, 3.0, darkMode.Score)
	assert.Equal(t, priority.High, darkMode.Label)
	assert.Equal(t, 1, darkMode.CommentCount)
	assert.Nil(t, darkMode.MyVote)

	offlineSync := items[1]
	assert.Equal(t, 1.5, offlineSync.Score)
	assert.Equal(t, priority.Medium, offlineSync.Label)
	require.NotNil(t, offlineSync.MyVote)
	assert.Equal(t, priority.Low, *offlineSync.MyVote)

	// Items without votes have the neutral score
	keyboardShortcuts := items[2]
	assert.Equal(t, 0, keyboardShortcuts.VoteCount)
	assert.Equal(t, 2.0, keyboardShortcuts.Score)
	assert.Equal(t, priority.Medium, keyboardShortcuts.Label)
}

func TestGetItems_Filters(t *testing.T) {
	server := SetupTestServer(t)
	path := "/brain-dumps/" + server.Data.TeamIdeas.ID + "/items"
	token := server.TokenFor(t, "alice@example.com")

	testCases := []struct {
		name           string
		query          string
		expectedCode   int
		expectedTitles []string
	}{
		{name: "high priority", query: "?priority=3", expectedCode: http.StatusOK, expectedTitles: []string{"Dark mode"}},
		{name: "medium priority", query: "?priority=2", expectedCode: http.StatusOK, expectedTitles: []string{"Offline sync", "Keyboard shortcuts"}},
		{name: "low priority", query: "?priority=1", expectedCode: http.StatusOK, expectedTitles: []string{}},
		{name: "search in title", query: "?search=SYNC", expectedCode: http.StatusOK, expectedTitles: []string{"Offline sync"}},
		{name: "created this week", query: "?date=week", expectedCode: http.StatusOK, expectedTitles: []string{"Dark mode", "Offline sync", "Keyboard shortcuts"}},
		{name: "invalid priority", query: "?priority=5", expectedCode: http.StatusUnprocessableEntity},
		{name: "invalid date window", query: "?date=yesterday", expectedCode: http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := server.Request(t, http.MethodGet, path+tc.query, token, nil)
			require.Equal(t, tc.expectedCode, resp.Code, resp.Body.String())

			if tc.expectedCode == http.StatusOK {
				assert.Equal(t, tc.expectedTitles, itemTitles(decodePayload[[]item.ItemOut](t, resp)))
			}
		})
	}
}

func TestGetItems_CompletedLast(t *testing.T) {
	server := SetupTestServer(t)
	token := server.TokenFor(t, "bob@example.com")

	completed := true
	resp := server.Request(t, http.MethodPatch, "/items/"+server.Data.Items["Dark mode"].ID, token, item.ItemUpdateIn{IsCompleted: &completed})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decodePayload[item.ItemOut](t, resp).IsCompleted)

	resp = server.Request(t, http.MethodGet, "/brain-dumps/"+server.Data.TeamIdeas.ID+"/items", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"Offline sync", "Keyboard shortcuts", "Dark mode"}, itemTitles(decodePayload[[]item.ItemOut](t, resp)))
}

func TestPublicCollection_Anonymous(t *testing.T) {
	server := SetupTestServer(t)
	collectionPath := "/brain-dumps/" + server.Data.PublicRoadmap.ID + "/items"

	resp := server.Request(t, http.MethodPost, collectionPath, server.TokenFor(t, "alice@example.com"), item.ItemIn{Title: "Launch"})
	require.Equal(t, http.StatusOK, resp.Code)
	launch := decodePayload[item.ItemOut](t, resp)

	resp = server.Request(t, http.MethodGet, collectionPath, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"Launch"}, itemTitles(decodePayload[[]item.ItemOut](t, resp)))

	resp = server.Request(t, http.MethodPost, collectionPath, "", item.ItemIn{Title: "Anonymous idea"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = server.Request(t, http.MethodPost, "/items/"+launch.ID+"/vote", "", vote.VoteIn{Priority: 3})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Authenticated strangers can read but not contribute
	resp = server.Request(t, http.MethodPost, "/items/"+launch.ID+"/vote", server.TokenFor(t, "dave@example.com"), vote.VoteIn{Priority: 3})
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

// === POST ===
func TestCreateItem(t *testing.T) {
	server := SetupTestServer(t)
	path := "/brain-dumps/" + server.Data.TeamIdeas.ID + "/items"

	highPriority := 3
	invalidPriority := 4

	testCases := []struct {
		name         string
		email        string
		request      item.ItemIn
		expectedCode int
	}{
		{name: "owner creates item", email: "alice@example.com", request: item.ItemIn{Title: "Export to CSV"}, expectedCode: http.StatusOK},
		{name: "editor creates item", email: "bob@example.com", request: item.ItemIn{Title: "Search"}, expectedCode: http.StatusOK},
		{name: "voter cannot create item", email: "carol@example.com", request: item.ItemIn{Title: "Widgets"}, expectedCode: http.StatusForbidden},
		{name: "stranger cannot see collection", email: "dave@example.com", request: item.ItemIn{Title: "Widgets"}, expectedCode: http.StatusNotFound},
		{name: "blank title", email: "alice@example.com", request: item.ItemIn{Title: "   "}, expectedCode: http.StatusUnprocessableEntity},
		{name: "invalid initial priority", email: "alice@example.com", request: item.ItemIn{Title: "Widgets", Priority: &invalidPriority}, expectedCode: http.StatusUnprocessableEntity},
		{name: "voter cannot create with priority", email: "carol@example.com", request: item.ItemIn{Title: "Widgets", Priority: &highPriority}, expectedCode: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := server.Request(t, http.MethodPost, path, server.TokenFor(t, tc.email), tc.request)
			assert.Equal(t, tc.expectedCode, resp.Code, resp.Body.String())
		})
	}
}

func TestCreateItem_WithInitialVote(t *testing.T) {
	server := SetupTestServer(t)
	path := "/brain-dumps/" + server.Data.TeamIdeas.ID + "/items"

	highPriority := 3
	resp := server.Request(t, http.MethodPost, path, server.TokenFor(t, "bob@example.com"), item.ItemIn{
		Title:       "  Push notifications ",
		Description: "For mobile",
		Priority:    &highPriority,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	created := decodePayload[item.ItemOut](t, resp)
	assert.Equal(t, "Push notifications", created.Title)
	assert.Equal(t, "bob", created.CreatorName)
	assert.Equal(t, 1, created.VoteCount)
	assert.Equal(t, 3.0, created.Score)
	assert.Equal(t, priority.High, created.Label)
	require.NotNil(t, created.MyVote)
	assert.Equal(t, priority.High, *created.MyVote)

	var cached item.Item
	require.NoError(t, server.DB.First(&cached, "id = ?", created.ID).Error)
	assert.Equal(t, 1, cached.VoteCount)
	assert.Equal(t, 3.0, cached.AvgPriority)

	require.Eventually(t, func() bool {
		return server.Events.Received(events.ItemCreated)
	}, time.Second, 10*time.Millisecond)
}

// === PATCH ===
func TestUpdateItem(t *testing.T) {
	server := SetupTestServer(t)
	path := "/items/" + server.Data.Items["Offline sync"].ID

	newTitle := "Offline mode"
	emptyTitle := " "

	testCases := []struct {
		name         string
		email        string
		request      item.ItemUpdateIn
		expectedCode int
	}{
		{name: "voter cannot edit", email: "carol@example.com", request: item.ItemUpdateIn{Title: &newTitle}, expectedCode: http.StatusForbidden},
		{name: "empty title", email: "bob@example.com", request: item.ItemUpdateIn{Title: &emptyTitle}, expectedCode: http.StatusUnprocessableEntity},
		{name: "editor renames", email: "alice@example.com", request: item.ItemUpdateIn{Title: &newTitle}, expectedCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := server.Request(t, http.MethodPatch, path, server.TokenFor(t, tc.email), tc.request)
			assert.Equal(t, tc.expectedCode, resp.Code, resp.Body.String())
		})
	}

	resp := server.Request(t, http.MethodGet, "/brain-dumps/"+server.Data.TeamIdeas.ID+"/items", server.TokenFor(t, "carol@example.com"), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, itemTitles(decodePayload[[]item.ItemOut](t, resp)), "Offline mode")
}

// === DELETE ===
func TestDeleteItem(t *testing.T) {
	server := SetupTestServer(t)

	testCases := []struct {
		name         string
		email        string
		itemTitle    string
		expectedCode int
	}{
		{name: "editor cannot delete foreign item", email: "bob@example.com", itemTitle: "Dark mode", expectedCode: http.StatusForbidden},
		{name: "voter cannot delete", email: "carol@example.com", itemTitle: "Offline sync", expectedCode: http.StatusForbidden},
		{name: "stranger cannot see item", email: "dave@example.com", itemTitle: "Offline sync", expectedCode: http.StatusNotFound},
		{name: "creator deletes own item", email: "bob@example.com", itemTitle: "Offline sync", expectedCode: http.StatusOK},
		{name: "owner deletes any item", email: "alice@example.com", itemTitle: "Dark mode", expectedCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := server.Request(t, http.MethodDelete, "/items/"+server.Data.Items[tc.itemTitle].ID, server.TokenFor(t, tc.email), nil)
			assert.Equal(t, tc.expectedCode, resp.Code, resp.Body.String())
		})
	}

	resp := server.Request(t, http.MethodGet, "/brain-dumps/"+server.Data.TeamIdeas.ID+"/items", server.TokenFor(t, "alice@example.com"), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"Keyboard shortcuts"}, itemTitles(decodePayload[[]item.ItemOut](t, resp)))

	var voteCount int64
	require.NoError(t, server.DB.Model(&vote.Vote{}).Count(&voteCount).Error)
	assert.Zero(t, voteCount)
}

func TestDeleteItem_CreatorAfterRevoke(t *testing.T) {
	server := SetupTestServer(t)
	bob := server.Data.Users["bob@example.com"]

	resp := server.Request(t, http.MethodDelete, "/brain-dumps/"+server.Data.TeamIdeas.ID+"/collaborators/"+bob.ID, server.TokenFor(t, "alice@example.com"), nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = server.Request(t, http.MethodDelete, "/items/"+server.Data.Items["Offline sync"].ID, server.TokenFor(t, "bob@example.com"), nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}
