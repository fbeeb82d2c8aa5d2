package sat

// modeSwitcher alternates between stable and focused search on a
// conflict-count schedule (§4.10). Each side keeps its own decision
// structure (heap vs queue) so a switch is just "start consulting the
// other structure" with no data to migrate; both modes share one
// restartController, which picks its trigger by the current mode.
type modeSwitcher struct {
	nextAt   uint64
	interval uint64
	switches uint64
}

func newModeSwitcher(interval uint64) *modeSwitcher {
	return &modeSwitcher{nextAt: interval, interval: interval}
}

// poll returns true when it's time to flip, bumping the schedule and the
// switch counter as a side effect.
func (m *modeSwitcher) poll(conflicts uint64) bool {
	if conflicts < m.nextAt {
		return false
	}
	m.switches++
	m.interval += m.interval / 2
	m.nextAt = conflicts + m.interval
	return true
}
