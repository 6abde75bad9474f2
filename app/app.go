// Package app wires repositories, services and handlers into a gin engine.
package app

import (
	"braindumpBackend/auth"
	"braindumpBackend/config"
	"braindumpBackend/domain/checklist"
	"braindumpBackend/domain/collection"
	"braindumpBackend/domain/comment"
	"braindumpBackend/domain/item"
	"braindumpBackend/domain/user"
	"braindumpBackend/domain/vote"
	"braindumpBackend/events"
	"braindumpBackend/socket"
	"braindumpBackend/storage"

	"github.com/gin-gonic/gin"
	socketio "github.com/zishang520/socket.io/socket"
	"gorm.io/gorm"
)

type App struct {
	Engine   *gin.Engine
	Notifier events.Notifier

	// Channels is nil if socket.io is disabled
	Channels socket.ChannelNamespace

	UserService       user.Service
	CollectionService collection.Service
	ItemService       item.Service
}

// Models returns all persisted entities in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&collection.Collection{},
		&collection.Collaborator{},
		&item.Item{},
		&vote.Vote{},
		&comment.Comment{},
		&checklist.ChecklistItem{},
	}
}

// CreateApp builds the application on an already migrated database. Notifications
// are published to the socket.io namespace, if enabled, and to the given publishers.
func CreateApp(
	brainDumpConfig *config.BrainDumpConfig,
	db *gorm.DB,
	authManager auth.AuthManager,
	publishers ...events.Publisher,
) (*App, error) {
	statsReader, err := storage.CreateStatsReader(db)
	if err != nil {
		return nil, err
	}

	var (
		userRepository         = user.CreateRepository(db)
		collectionRepository   = collection.CreateRepository(db)
		collaboratorRepository = collection.CreateCollaboratorRepository(db)
		collectionGuard        = collection.CreateGuard(collectionRepository, collaboratorRepository)
		voteRepository         = vote.CreateRepository(db)
		itemRepository         = item.CreateRepository(db, statsReader, voteRepository)
		commentRepository      = comment.CreateRepository(db)
		checklistRepository    = checklist.CreateRepository(db)
	)

	gin.SetMode(gin.ReleaseMode)
	webServer := gin.New()
	webServer.Use(gin.Recovery())

	var channels socket.ChannelNamespace
	if brainDumpConfig.Realtime.EnableSocketIo {
		socketManager := socket.CreateSocketManager(authManager)
		channels = socket.CreateChannelNamespace(socketManager, collectionGuard, "brain-dumps")
		publishers = append(publishers, channels)

		c := socketio.DefaultServerOptions()
		webServer.GET("/socket.io/*any", gin.WrapH(socketManager.Server().ServeHandler(c)))
		webServer.POST("/socket.io/*any", gin.WrapH(socketManager.Server().ServeHandler(c)))
	}

	notifier := events.CreateNotifier(publishers...)

	var (
		userService = user.CreateService(userRepository, authManager)
		userHandler = user.CreateHandler(userService)

		collectionService = collection.CreateService(collectionRepository, collaboratorRepository, userRepository, collectionGuard, notifier)
		collectionHandler = collection.CreateHandler(collectionService)

		itemService = item.CreateService(itemRepository, statsReader, collectionGuard, notifier)
		itemHandler = item.CreateHandler(itemService)

		voteService = vote.CreateService(voteRepository, itemRepository, itemService, notifier)
		voteHandler = vote.CreateHandler(voteService)

		commentService = comment.CreateService(commentRepository, itemRepository, itemService, notifier)
		commentHandler = comment.CreateHandler(commentService)

		checklistService = checklist.CreateService(checklistRepository, itemService, notifier)
		checklistHandler = checklist.CreateHandler(checklistService)
	)

	user.RegisterRoutes(webServer, userHandler, authManager)
	collection.RegisterRoutes(webServer, collectionHandler, authManager)
	item.RegisterRoutes(webServer, itemHandler, authManager)
	vote.RegisterRoutes(webServer, voteHandler, authManager)
	comment.RegisterRoutes(webServer, commentHandler, authManager)
	checklist.RegisterRoutes(webServer, checklistHandler, authManager)

	return &App{
		Engine:            webServer,
		Notifier:          notifier,
		Channels:          channels,
		UserService:       userService,
		CollectionService: collectionService,
		ItemService:       itemService,
	}, nil
}
