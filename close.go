package nvstore

// Close releases the directory lock. Further operations return ErrClosed.
//
// Exiting the process releases the lock as well; Close exists so a process
// can hand the directory over, or prepare it again, without exiting.
func (d *Dir) Close() error {
	if d == nil || !d.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := d.lock.Release()
	d.logger.LogClose(err)
	return err
}
