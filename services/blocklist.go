package services

import (
	"context"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/medtrustid-lab/medtrust_api/model"
	"github.com/medtrustid-lab/medtrust_api/services/repositories"
	log "github.com/sirupsen/logrus"
)

// blocklistCheckTimeout bounds blocklist reads on the admission path so a
// hung datastore cannot wedge request handling.
const blocklistCheckTimeout = 2 * time.Second

// BlocklistService manages time-bounded IP ban records. Expired records
// are removed lazily when read.
type BlocklistService struct {
	appContext.DefaultService

	sqlSvc *SqlService
	repo   *repositories.SecurityRepository

	now func() time.Time
}

const BLOCKLIST_SVC = "blocklist_svc"

func (svc BlocklistService) Id() string {
	return BLOCKLIST_SVC
}

func (svc *BlocklistService) Configure(ctx *appContext.Context) error {
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *BlocklistService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.repo = repositories.NewSecurityRepository(svc.sqlSvc.Db())
	return nil
}

// Block upserts a ban for the client; a repeated block overwrites the
// prior record and restarts the 30-minute clock.
func (svc *BlocklistService) Block(clientIP, reason string) error {
	log.WithFields(log.Fields{"ip": clientIP, "reason": reason}).Warn("Blocking IP")

	return svc.repo.UpsertBlock(&model.BlockedIP{
		IPAddress: clientIP,
		Reason:    reason,
		ExpiresAt: svc.now().Add(BlockDuration),
	})
}

// IsBlocked reports whether the client is currently banned. A datastore
// error is treated as not blocked: denying all traffic because the
// blocklist is unreachable is worse than under-protecting.
func (svc *BlocklistService) IsBlocked(clientIP string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), blocklistCheckTimeout)
	defer cancel()

	block, err := svc.repo.GetBlock(ctx, clientIP)
	if err != nil {
		log.WithField("ip", clientIP).WithError(err).Warn("Blocklist check failed")
		return false
	}
	if block == nil {
		return false
	}

	if !svc.now().Before(block.ExpiresAt) {
		if err := svc.repo.DeleteBlock(ctx, clientIP); err != nil {
			log.WithField("ip", clientIP).WithError(err).Warn("Failed to remove expired block")
		}
		return false
	}

	return true
}
