package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medtrustid-lab/medtrust_api/model"
	"github.com/medtrustid-lab/medtrust_api/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SecurityRepository handles security alerts and the IP blocklist.
type SecurityRepository struct {
	BaseRepository
}

func NewSecurityRepository(db *gorm.DB) *SecurityRepository {
	return &SecurityRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== ALERT METHODS ====================

func (ds *SecurityRepository) CreateAlert(alert *model.SecurityAlert) (*model.SecurityAlert, error) {
	if alert.ID == "" {
		id, _ := uuid.NewV7()
		alert.ID = id.String()
	}
	if alert.Status == "" {
		alert.Status = shared.AlertStatusActive
	}
	alert.CreatedAt = time.Now()

	if err := ds.db.Create(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

func (ds *SecurityRepository) GetAlert(id string) (*model.SecurityAlert, error) {
	var alert model.SecurityAlert
	if err := ds.db.Where("id = ?", id).First(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (ds *SecurityRepository) GetAlerts(limit int) ([]model.SecurityAlert, error) {
	var alerts []model.SecurityAlert
	err := ds.db.Order("created_at DESC").Limit(limit).Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (ds *SecurityRepository) ResolveAlert(id string, resolvedAt time.Time) error {
	return ds.db.Model(&model.SecurityAlert{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      shared.AlertStatusResolved,
		"resolved_at": &resolvedAt,
	}).Error
}

func (ds *SecurityRepository) CountActiveAlerts() (int64, error) {
	var count int64
	err := ds.db.Model(&model.SecurityAlert{}).Where("status = ?", shared.AlertStatusActive).Count(&count).Error
	return count, err
}

// ==================== BLOCKLIST METHODS ====================

// UpsertBlock writes or refreshes a ban record. The last block always wins
// and restarts the expiry clock.
func (ds *SecurityRepository) UpsertBlock(block *model.BlockedIP) error {
	if block.ID == "" {
		id, _ := uuid.NewV7()
		block.ID = id.String()
	}
	now := time.Now()
	if block.CreatedAt.IsZero() {
		block.CreatedAt = now
	}
	block.UpdatedAt = now

	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ip_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason", "expires_at", "updated_at"}),
	}).Create(block).Error
}

func (ds *SecurityRepository) GetBlock(ctx context.Context, ip string) (*model.BlockedIP, error) {
	var block model.BlockedIP
	err := ds.db.WithContext(ctx).Where("ip_address = ?", ip).First(&block).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &block, nil
}

func (ds *SecurityRepository) DeleteBlock(ctx context.Context, ip string) error {
	return ds.db.WithContext(ctx).Where("ip_address = ?", ip).Delete(&model.BlockedIP{}).Error
}

func (ds *SecurityRepository) CountBlocked() (int64, error) {
	var count int64
	err := ds.db.Model(&model.BlockedIP{}).Count(&count).Error
	return count, err
}
