//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"

	"travia-admin/internal/config"
	"travia-admin/internal/database"
	"travia-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func getTestDB(t *testing.T) *sql.DB {
	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "travia"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	return db
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return i
}

func seedTestAgency(t *testing.T, db *sql.DB, email string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta"), bcrypt.MinCost)
	require.NoError(t, err)

	var id string
	err = db.QueryRow(
		`INSERT INTO agencies (name, email, password, status, states)
		 VALUES ($1, $2, $3, 'active', '{Madrid,Asturias}')
		 RETURNING id::text`,
		"Integration Test Agency", email, string(hash),
	).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM agencies WHERE id = $1::uuid`, id)
	})
	return id
}

func TestPostgresAgenciesGetByEmail(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	ctx := context.Background()
	repo := NewPostgresAgenciesRepository(db)
	id := seedTestAgency(t, db, "integration-agency@example.com")

	// lookup is case-insensitive
	a, err := repo.GetAgencyByEmail(ctx, "Integration-Agency@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, id, a.AgencyID)
	assert.Equal(t, domain.AgencyStatusActive, a.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword(a.PasswordHash, []byte("secreta")))
	assert.ElementsMatch(t, []string{"Madrid", "Asturias"}, []string(a.States))

	_, err = repo.GetAgencyByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresAgenciesStatusUpdate(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	ctx := context.Background()
	repo := NewPostgresAgenciesRepository(db)
	id := seedTestAgency(t, db, "integration-status@example.com")

	require.NoError(t, repo.SetAgencyStatus(ctx, id, domain.AgencyStatusInactive))
	a, err := repo.GetAgency(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.AgencyStatusInactive, a.Status)

	assert.ErrorIs(t,
		repo.SetAgencyStatus(ctx, "00000000-0000-0000-0000-000000000000", "active"),
		ErrNotFound)
}

func TestPostgresMeetingPointsResolveTravellerUser(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	ctx := context.Background()
	agencyID := seedTestAgency(t, db, "integration-mp@example.com")

	var userID string
	require.NoError(t, db.QueryRow(
		`INSERT INTO users (email, full_name, state)
		 VALUES ('viajero@example.com', 'Marta Viajera', 'Asturias')
		 RETURNING id::text`,
	).Scan(&userID))
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM users WHERE id = $1::uuid`, userID)
	})

	var travellerID string
	require.NoError(t, db.QueryRow(
		`INSERT INTO travellers (user_id) VALUES ($1::uuid) RETURNING id::text`,
		userID,
	).Scan(&travellerID))

	var tripID string
	require.NoError(t, db.QueryRow(
		`INSERT INTO trips (agency_id) VALUES ($1::uuid) RETURNING id::text`,
		agencyID,
	).Scan(&tripID))

	_, err := db.Exec(
		`INSERT INTO meeting_points (trip_id, traveller_id) VALUES ($1::uuid, $2::uuid)`,
		tripID, travellerID)
	require.NoError(t, err)

	repo := NewPostgresMeetingPointsRepository(db)
	items, err := repo.ListMeetingPoints(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// traveller_id points at travellers; the user comes via travellers.user_id
	mp := items[0]
	assert.Equal(t, travellerID, mp.TravellerID)
	require.NotNil(t, mp.Traveller)
	assert.Equal(t, userID, mp.Traveller.UserID)
	assert.Equal(t, "viajero@example.com", mp.Traveller.Email)
	assert.Equal(t, "Marta Viajera", mp.Traveller.FullName)
}

func TestPostgresNotificationsRoundTrip(t *testing.T) {
	db := getTestDB(t)
	if db == nil {
		return
	}
	defer db.Close()

	ctx := context.Background()
	agencyID := seedTestAgency(t, db, "integration-notify@example.com")
	repo := NewPostgresNotificationsRepository(db)

	for _, title := range []string{"primera", "segunda"} {
		_, err := repo.CreateNotification(ctx, &domain.Notification{
			AgencyID: agencyID,
			Title:    title,
			Body:     "cuerpo",
		})
		require.NoError(t, err)
	}

	items, err := repo.ListNotifications(ctx, agencyID, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// most recent first
	assert.Equal(t, "segunda", items[0].Title)
	assert.Equal(t, "primera", items[1].Title)
}
