package services

import (
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/platform/config"
)

// NewServiceContainer wires the repositories into the service graph. The
// journal bridge and audit recorder are built first because the payable
// lifecycle depends on both.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	journalBridge := NewJournalBridgeService(repos.JournalRepo)
	audit := NewAuditRecorderService(repos.AuditRepo)

	return &portssvc.ServiceContainer{
		Payable:       NewPayableService(repos.PayableRepo, repos.SequenceRepo, journalBridge, audit, cfg),
		Reporting:     NewReportingService(repos.PayableRepo, cfg),
		JournalBridge: journalBridge,
		Audit:         audit,
	}
}
