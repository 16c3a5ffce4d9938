package bootstrap

import (
	"context"
	"log"

	"ai-helpdesk-be/internal/config"
	"ai-helpdesk-be/internal/constant"
	"ai-helpdesk-be/internal/controller"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/internal/repository/memory"
	"ai-helpdesk-be/internal/repository/predictionlog"
	"ai-helpdesk-be/internal/service"
	"ai-helpdesk-be/pkg/database"
	"ai-helpdesk-be/pkg/docs"
	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/guard"
	"ai-helpdesk-be/pkg/llm/factory"
	"ai-helpdesk-be/pkg/tools"
	"ai-helpdesk-be/pkg/vectorstore"
	"ai-helpdesk-be/pkg/vectorstore/jsonfile"
	"ai-helpdesk-be/pkg/vectorstore/pgvectorstore"
	"ai-helpdesk-be/pkg/vectorstore/qdrantstore"
	"ai-helpdesk-be/pkg/vectorstore/sqlitestore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	RagController        controller.IRagController
	OrderToolsController controller.IOrderToolsController
	ReceiptController    controller.IReceiptController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Inference Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewHuggingFaceProvider(
			cfg.Keys.HuggingFace,
			cfg.Ai.HFBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: HUGGINGFACE (%s)", cfg.Ai.EmbeddingModel)
	}
	// Repeated texts (corpus rebuilds, duplicate questions) hit the cache
	// instead of the hosted API.
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HFBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	visionProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.VisionModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HFBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Vision Provider: %v", err)
	}
	log.Printf("[INFO] Using Vision Model: %s", cfg.Ai.VisionModel)

	// 4. Docs Corpus & Vector Store
	corpus, err := docs.LoadDir(cfg.Data.DocsDir)
	if err != nil {
		log.Printf("[WARN] Docs corpus loaded with errors: %v", err)
	}
	if len(corpus) == 0 {
		log.Printf("[WARN] No docs found in %s; retrieval will return nothing", cfg.Data.DocsDir)
	}

	store := newVectorStore(cfg)
	if err := store.Build(context.Background(), corpus, embeddingProvider); err != nil {
		log.Fatalf("[FATAL] Failed to build vector store: %v", err)
	}
	log.Printf("[INFO] Vector store ready: %s (%d docs)", cfg.Store.Backend, len(corpus))

	// 5. Order Data & Tool Registry
	orderRepo, err := memory.NewOrderRepository(cfg.Data.OrdersCSV, cfg.Data.CustomersCSV)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load order data: %v", err)
	}
	registry := tools.NewRegistry(orderRepo)
	orders, customers := orderRepo.Counts()
	log.Printf("[INFO] Order data loaded: %d orders, %d customers", orders, customers)

	// 6. Predictions Log
	predLog, err := predictionlog.NewLog(cfg.Data.PredictionsLog)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open predictions log: %v", err)
	}

	// 7. Services
	ragService := service.NewRagService(
		store,
		embeddingProvider,
		llmProvider,
		guard.NewDenylist(constant.RagDenylist),
		sysLogger,
		cfg.Store.TopK,
	)
	toolRouterService := service.NewToolRouterService(
		llmProvider,
		registry,
		guard.NewDenylist(constant.ToolsDenylist),
		sysLogger,
	)
	receiptService := service.NewReceiptService(visionProvider, pubSub, sysLogger)
	consumerService := service.NewConsumerService(pubSub, predLog, sysLogger)

	// 8. Controllers
	return &Container{
		RagController:        controller.NewRagController(ragService),
		OrderToolsController: controller.NewOrderToolsController(toolRouterService),
		ReceiptController:    controller.NewReceiptController(receiptService, predLog),
		ConsumerService:      consumerService,
	}
}

// newVectorStore selects the retrieval backend once at startup. All four
// implementations satisfy the same contract, so the services never know
// which one is behind them.
func newVectorStore(cfg *config.Config) vectorstore.Store {
	switch cfg.Store.Backend {
	case "sqlite":
		store, err := sqlitestore.NewStore(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to open sqlite vector store: %v", err)
		}
		return store
	case "qdrant":
		return qdrantstore.NewStore(cfg.Store.QdrantURL, cfg.Store.QdrantCollection, cfg.Store.Dimension)
	case "pgvector":
		db, err := database.NewGormDBFromDSN(cfg.Store.PostgresDSN)
		if err != nil {
			log.Fatalf("[FATAL] Unable to connect to GORM DB: %v", err)
		}
		store, err := pgvectorstore.NewStore(db, cfg.Store.Dimension)
		if err != nil {
			log.Fatalf("[FATAL] Failed to prepare pgvector store: %v", err)
		}
		return store
	default:
		return jsonfile.NewStore(cfg.Store.JSONPath)
	}
}
