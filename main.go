package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"padcontrol/api"
	"padcontrol/config"
	"padcontrol/gamepad"
	"padcontrol/pad"
	"padcontrol/service"
)

// setupLogging creates a log file in the log directory with timestamp
// Returns the log file handle (caller should defer Close())
func setupLogging() (*os.File, error) {
	// Create log directory if not exists
	logDir := "log"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create log file with timestamp: log/2025-12-08_21-52-35.log
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logDir, timestamp+".log")

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// Write to both console and file
	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(multiWriter)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	log.Printf("📝 Logging to: %s", logPath)
	return logFile, nil
}

func main() {
	// Setup file logging
	logFile, err := setupLogging()
	if err != nil {
		log.Printf("Warning: Failed to setup file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting Pad Control Backend...")

	cfg := config.Load()

	// Initialize recording store
	db, err := config.InitDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()
	store := service.NewRecordingStore(db)

	// Virtual pad: frames go out through the feeder daemon
	feeder := pad.NewFeeder(cfg.FeederAddr)
	if err := feeder.Connect(); err != nil {
		log.Printf("Warning: virtual pad unavailable: %v", err)
	}
	device := pad.NewDevice(feeder)

	// Physical controller (first connected)
	source, err := gamepad.Open()
	if err != nil {
		log.Fatal("Failed to initialize controller input:", err)
	}
	defer source.Close()
	if !source.Connected() {
		log.Println("⚠️ No physical controller connected; recording disabled until one appears")
	}

	// Initialize WebSocket hub
	wsHub := api.NewWebSocketHub()
	go wsHub.Run()

	// Initialize services
	delay := service.PreciseDelay{}
	padManager := service.NewPadManager(device, source)
	engine := service.NewEngine(device, delay, cfg.UnknownActionPolicy)
	live := service.NewLiveExecutor(device, delay)
	recorder := service.NewRecorder(store, source, wsHub,
		time.Duration(cfg.PollIntervalMs)*time.Millisecond, cfg.StopButton)
	player := service.NewPlayer(store, device, delay, wsHub)

	// Setup HTTP server
	router := gin.Default()
	api.SetupRoutes(router, padManager, engine, live, recorder, player, store, wsHub)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server starting on http://localhost%s", addr)
	log.Printf("WebSocket server on ws://localhost%s/ws", addr)

	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
