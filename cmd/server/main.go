package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"judge_gateway/internal/api"
	"judge_gateway/internal/app/service"
	"judge_gateway/internal/app/token"
	"judge_gateway/internal/common/security"
	"judge_gateway/internal/domain/repository"
	"judge_gateway/internal/platform/cache"
	"judge_gateway/internal/platform/config"
	"judge_gateway/internal/platform/database"
	"judge_gateway/internal/platform/judge"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Refresh-token registry. The in-memory registry loses sessions on
	// restart; Redis keeps them and is shareable across instances.
	var refreshStore token.Store
	if config.AppConfig.RefreshStore == "redis" {
		cache.ConnectRedis()
		defer cache.CloseRedis()
		refreshStore = token.NewRedisStore(cache.RDB)
		fmt.Println("Redis refresh-token registry connected.")
	} else {
		refreshStore = token.NewMemoryStore()
		fmt.Println("In-memory refresh-token registry initialized.")
	}

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 6. Remote judge client
	judgeClient := judge.NewClient(
		config.AppConfig.JudgeProblemsURL,
		config.AppConfig.JudgeSubmissionsURL,
		config.AppConfig.JudgeAccessToken,
	)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, refreshStore)
	questionService := service.NewQuestionService(questionRepo, judgeClient)
	submissionService := service.NewSubmissionService(
		submissionRepo,
		judgeClient,
		config.AppConfig.SubmissionPollInterval,
		config.AppConfig.SubmissionMaxPolls,
		config.AppConfig.DefaultCompilerID,
	)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, questionService, submissionService, config.AppConfig.CORSOrigins)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // submission polling responds on the original connection
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
