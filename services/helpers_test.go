package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/medtrustid-lab/medtrust_api/model"
)

func newTestSqlService(t *testing.T) *SqlService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Consent{},
		&model.AccessRequest{},
		&model.AccessLog{},
		&model.SecurityAlert{},
		&model.BlockedIP{},
	))

	return &SqlService{db: db}
}

// newTestAnomalyService builds an AnomalyService with synchronous dispatch
// so side effects are visible as soon as a check returns.
func newTestAnomalyService() *AnomalyService {
	return &AnomalyService{
		requestCounts: make(map[string]*clientWindow),
		failedLogins:  make(map[string]*clientWindow),
		now:           time.Now,
		dispatch:      func(fn func()) { fn() },
		closed:        make(chan struct{}),
	}
}

type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
