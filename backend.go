package nvstore

// Backend is the contract of a record store. Dir is the directory-backed
// implementation; other backends (for example a database) would implement the
// same contract, including ErrRetry for missing records.
type Backend interface {
	Load(instanceID uint32, name string) ([]byte, error)
	Store(instanceID uint32, name string, data []byte) error
	Delete(instanceID uint32, name string, mustExist bool) error
	Close() error
}

var _ Backend = (*Dir)(nil)
