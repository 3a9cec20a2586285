package storage

import (
	"path/filepath"
	"testing"
	"time"

	"taker_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *Storage {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&domain.MarketInfo{}, &domain.Preference{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return &Storage{db: db}
}

func TestUpsertAndFindMarket(t *testing.T) {
	s := setupTestDB(t)

	info := &domain.MarketInfo{
		Symbol:    "BTCUSD",
		Name:      "Bitcoin / USD",
		IsActive:  true,
		UpdatedAt: time.Now(),
	}

	if err := s.Upsert(info); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	fetched, err := s.FindBySymbol("BTCUSD")
	if err != nil {
		t.Fatalf("FindBySymbol failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("fetched market is nil")
	}
	if fetched.Name != "Bitcoin / USD" {
		t.Errorf("expected name 'Bitcoin / USD', got %s", fetched.Name)
	}
}

func TestFindBySymbol_MissingIsNotAnError(t *testing.T) {
	s := setupTestDB(t)

	fetched, err := s.FindBySymbol("NOPE")
	if err != nil {
		t.Fatalf("FindBySymbol failed: %v", err)
	}
	if fetched != nil {
		t.Error("expected nil for missing market")
	}
}

func TestUpdateMarket(t *testing.T) {
	s := setupTestDB(t)
	info := &domain.MarketInfo{Symbol: "ETHUSD", Name: "Before"}
	s.Upsert(info)

	info.Name = "After"
	if err := s.Upsert(info); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, _ := s.FindBySymbol("ETHUSD")
	if fetched.Name != "After" {
		t.Errorf("expected name 'After', got '%s'", fetched.Name)
	}
}

func TestToggleFavorite(t *testing.T) {
	s := setupTestDB(t)
	s.Upsert(&domain.MarketInfo{Symbol: "FAV", IsFavorite: false})

	isFav, err := s.ToggleFavorite("FAV")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if !isFav {
		t.Error("expected IsFavorite to be true")
	}

	isFav, _ = s.ToggleFavorite("FAV")
	if isFav {
		t.Error("expected IsFavorite to be false")
	}
}

func TestPreferences(t *testing.T) {
	s := setupTestDB(t)

	if err := s.SavePreference(domain.PrefTheme, "dark"); err != nil {
		t.Fatalf("SavePreference failed: %v", err)
	}

	theme, err := s.GetPreference(domain.PrefTheme)
	if err != nil {
		t.Fatalf("GetPreference failed: %v", err)
	}
	if theme != "dark" {
		t.Errorf("expected 'dark', got %q", theme)
	}

	// Unset keys come back empty without an error.
	missing, err := s.GetPreference("nope")
	if err != nil || missing != "" {
		t.Errorf("expected empty value, got %q err=%v", missing, err)
	}

	s.SavePreference(domain.PrefLastDirection, "long")
	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if len(prefs) != 2 || prefs[domain.PrefTheme] != "dark" {
		t.Errorf("unexpected preference map: %v", prefs)
	}
}
