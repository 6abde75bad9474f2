package test

import (
	"braindumpBackend/domain/checklist"
	"braindumpBackend/domain/collection"
	"braindumpBackend/domain/comment"
	"braindumpBackend/domain/item"
	"braindumpBackend/domain/user"
	"braindumpBackend/domain/vote"
	"braindumpBackend/priority"
	"braindumpBackend/storage"
	"braindumpBackend/utils"
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedPassword is the password of every generated user.
const SeedPassword = "brain-dump-demo"

var SeedUsers = []string{"alice@example.com", "bob@example.com", "carol@example.com", "dave@example.com"}

// TestData references the generated records.
type TestData struct {
	// Users indexed by their email
	Users map[string]*user.User

	// Private collection of alice, shared with bob (edit, vote) and carol (vote)
	TeamIdeas *collection.Collection

	// Public collection of alice without collaborators
	PublicRoadmap *collection.Collection

	// Items of TeamIdeas indexed by their title
	Items map[string]*item.Item
}

// GenerateTestData fills a migrated database with a small set of users, collections and items.
func GenerateTestData(db *gorm.DB) (*TestData, error) {
	ctx := context.Background()
	data := &TestData{
		Users: make(map[string]*user.User),
		Items: make(map[string]*item.Item),
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	hash := string(passwordHash)

	for _, email := range SeedUsers {
		seedUser := &user.User{
			ID:           utils.GenerateUuid(),
			Email:        email,
			Name:         email[:len(email)-len("@example.com")],
			PasswordHash: &hash,
		}
		if err := db.Create(seedUser).Error; err != nil {
			return nil, err
		}
		data.Users[email] = seedUser
	}

	alice := data.Users["alice@example.com"]
	bob := data.Users["bob@example.com"]
	carol := data.Users["carol@example.com"]

	data.TeamIdeas = &collection.Collection{
		ID:          utils.GenerateUuid(),
		Name:        "Team Ideas",
		Description: "Everything we might build next",
		OwnerID:     alice.ID,
	}
	data.PublicRoadmap = &collection.Collection{
		ID:       utils.GenerateUuid(),
		Name:     "Public Roadmap",
		IsPublic: true,
		OwnerID:  alice.ID,
	}
	for _, seedCollection := range []*collection.Collection{data.TeamIdeas, data.PublicRoadmap} {
		if err := db.Omit(clause.Associations).Create(seedCollection).Error; err != nil {
			return nil, err
		}
	}

	collaborators := []collection.Collaborator{
		{CollectionID: data.TeamIdeas.ID, UserID: bob.ID, CanEdit: true, CanVote: true, InvitedAt: time.Now()},
		{CollectionID: data.TeamIdeas.ID, UserID: carol.ID, CanEdit: false, CanVote: true, InvitedAt: time.Now()},
	}
	if err := db.Omit(clause.Associations).Create(&collaborators).Error; err != nil {
		return nil, err
	}

	statsReader, err := storage.CreateStatsReader(db)
	if err != nil {
		return nil, err
	}
	voteRepository := vote.CreateRepository(db)
	itemRepository := item.CreateRepository(db, statsReader, voteRepository)

	// Created one second apart so the list order is deterministic
	createdAt := time.Now().Add(-time.Hour)
	seedItems := []struct {
		title   string
		creator *user.User
		votes   map[*user.User]priority.Priority
	}{
		{title: "Dark mode", creator: alice, votes: map[*user.User]priority.Priority{alice: priority.High, bob: priority.High}},
		{title: "Offline sync", creator: bob, votes: map[*user.User]priority.Priority{bob: priority.Medium, carol: priority.Low}},
		{title: "Keyboard shortcuts", creator: alice, votes: map[*user.User]priority.Priority{}},
	}

	for i, seedItem := range seedItems {
		itemCreatedAt := createdAt.Add(time.Duration(i) * time.Second)
		newItem := &item.Item{
			ID:           utils.GenerateUuid(),
			CollectionID: data.TeamIdeas.ID,
			Title:        seedItem.title,
			CreatorID:    seedItem.creator.ID,
			AvgPriority:  priority.DefaultScore,
			CreatedAt:    itemCreatedAt,
			UpdatedAt:    itemCreatedAt,
		}
		if err := itemRepository.Create(ctx, newItem, nil); err != nil {
			return nil, err
		}

		for voter, value := range seedItem.votes {
			if err := voteRepository.Upsert(ctx, newItem.ID, voter.ID, value); err != nil {
				return nil, err
			}
		}
		data.Items[seedItem.title] = newItem
	}

	seedComment := &comment.Comment{
		ID:        utils.GenerateUuid(),
		ItemID:    data.Items["Dark mode"].ID,
		Content:   "Please, my eyes",
		CreatorID: carol.ID,
	}
	if err := db.Omit(clause.Associations).Create(seedComment).Error; err != nil {
		return nil, err
	}

	for position, title := range []string{"Pick a palette", "Add a toggle"} {
		entry := &checklist.ChecklistItem{
			ID:        utils.GenerateUuid(),
			ItemID:    data.Items["Dark mode"].ID,
			Title:     title,
			Position:  position,
			CreatorID: alice.ID,
		}
		if err := db.Omit(clause.Associations).Create(entry).Error; err != nil {
			return nil, err
		}
	}

	itemIds := make([]string, 0, len(data.Items))
	for _, seedItem := range data.Items {
		itemIds = append(itemIds, seedItem.ID)
	}
	if _, err := itemRepository.RefreshCounters(ctx, itemIds...); err != nil {
		return nil, err
	}

	return data, nil
}
