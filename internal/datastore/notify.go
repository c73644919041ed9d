package datastore

// Subscribe returns a channel that receives one value per data-ready
// notification. Notifications are coalesced: a subscriber that has not
// drained the previous signal sees a single pending value.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.subMu.Unlock()
	return ch
}

// NotifyReady signals every subscriber without blocking.
func (s *Store) NotifyReady() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
