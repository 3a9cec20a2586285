package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"taker_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage defines the interface for data persistence
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance at the default OS path
func NewStorage() (*Storage, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}
	return NewStorageAt(dbPath)
}

// NewStorageAt creates a new SQLite storage instance at an explicit path
func NewStorageAt(dbPath string) (*Storage, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Pure Go SQLite, no cgo
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.MarketInfo{}, &domain.Preference{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "TakerGo", "data", "taker.db"), nil
}

// ======================================================================================
// Market Operations
// ======================================================================================

// Upsert creates or updates market metadata
func (s *Storage) Upsert(info *domain.MarketInfo) error {
	return s.db.Save(info).Error
}

// FindBySymbol retrieves market metadata by symbol
func (s *Storage) FindBySymbol(symbol string) (*domain.MarketInfo, error) {
	var info domain.MarketInfo
	err := s.db.First(&info, "symbol = ?", symbol).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	return &info, err
}

// FindAll retrieves all markets
func (s *Storage) FindAll() ([]domain.MarketInfo, error) {
	var infos []domain.MarketInfo
	err := s.db.Find(&infos).Error
	return infos, err
}

// ToggleFavorite toggles the favorite status of a market
func (s *Storage) ToggleFavorite(symbol string) (bool, error) {
	var info domain.MarketInfo
	if err := s.db.First(&info, "symbol = ?", symbol).Error; err != nil {
		return false, err
	}

	info.IsFavorite = !info.IsFavorite
	err := s.db.Save(&info).Error
	return info.IsFavorite, err
}

// ======================================================================================
// Preference Operations
// ======================================================================================

// SavePreference saves a user preference
func (s *Storage) SavePreference(key, value string) error {
	pref := domain.Preference{
		Key:   key,
		Value: value,
	}
	return s.db.Save(&pref).Error
}

// GetPreference loads a single preference; empty string when unset
func (s *Storage) GetPreference(key string) (string, error) {
	var pref domain.Preference
	err := s.db.First(&pref, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return pref.Value, err
}

// LoadPreferences loads all user preferences as a map
func (s *Storage) LoadPreferences() (map[string]string, error) {
	var prefs []domain.Preference
	if err := s.db.Find(&prefs).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, p := range prefs {
		result[p.Key] = p.Value
	}
	return result, nil
}
