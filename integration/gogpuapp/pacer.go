// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuapp

import "time"

// pacer holds redraws to a minimum period.
type pacer struct {
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval, now: time.Now, sleep: time.Sleep}
}

// wait sleeps until interval has passed since the previous call.
func (p *pacer) wait() {
	if p.interval <= 0 {
		return
	}
	now := p.now()
	if !p.last.IsZero() {
		if d := p.interval - now.Sub(p.last); d > 0 {
			p.sleep(d)
			now = now.Add(d)
		}
	}
	p.last = now
}
