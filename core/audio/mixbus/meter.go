package mixbus

import "sync"

// meterRing keeps the last len(samples) samples written to a channel.
type meterRing struct {
	mu      sync.Mutex
	samples []float32
	next    int
	filled  bool
}

func (m *meterRing) write(samples []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sample := range samples {
		m.pushLocked(sample)
	}
}

// silence records n zero samples, so a channel that stops talking decays
// to a zero level.
func (m *meterRing) silence(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for range min(n, len(m.samples)) {
		m.pushLocked(0)
	}
}

func (m *meterRing) pushLocked(sample float32) {
	m.samples[m.next] = sample
	m.next++
	if m.next == len(m.samples) {
		m.next = 0
		m.filled = true
	}
}

func (m *meterRing) Read(dst []float32) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.next
	if m.filled {
		size = len(m.samples)
	}
	n := min(len(dst), size)

	start := m.next - n
	if start < 0 {
		start += len(m.samples)
	}
	for i := range n {
		dst[i] = m.samples[(start+i)%len(m.samples)]
	}
	return n
}
