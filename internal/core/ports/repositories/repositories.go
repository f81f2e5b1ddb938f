package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service layer. Wiring happens once at startup.
type RepositoryProvider struct {
	PayableRepo  PayableRepositoryWithTx
	SequenceRepo SequenceAllocator
	JournalRepo  JournalRepository
	AuditRepo    AuditLogRepository
}
