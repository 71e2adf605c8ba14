/*
 * rpl48 - Deferred callback scheduler.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package eval

// scheduler is a delta-queue of deferred callbacks, each due after a number of
// evaluated objects rather than a wall-clock duration. The main loop advances
// it by one on every object it executes; a callback firing is how a long-
// running command (e.g. a series summation) requests a draw_refresh suspension
// point without the loop knowing anything about rendering.
type scheduler struct {
	head *schedEvent
	tail *schedEvent
}

type schedEvent struct {
	delta int
	cb    func()
	prev  *schedEvent
	next  *schedEvent
}

// Schedule queues cb to run after `after` further Advance calls.
func (s *scheduler) Schedule(after int, cb func()) {
	if after <= 0 {
		cb()
		return
	}
	ev := &schedEvent{delta: after, cb: cb}
	if s.head == nil {
		s.head = ev
		s.tail = ev
		return
	}
	cur := s.head
	for cur != nil {
		if ev.delta <= cur.delta {
			cur.delta -= ev.delta
			ev.prev = cur.prev
			ev.next = cur
			cur.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				s.head = ev
			}
			return
		}
		ev.delta -= cur.delta
		cur = cur.next
	}
	ev.prev = s.tail
	s.tail.next = ev
	s.tail = ev
}

// Advance ticks the queue by n steps, firing and removing any event
// whose delta reaches zero.
func (s *scheduler) Advance(n int) {
	if s.head == nil {
		return
	}
	s.head.delta -= n
	for s.head != nil && s.head.delta <= 0 {
		ev := s.head
		s.head = ev.next
		if s.head != nil {
			s.head.prev = nil
			s.head.delta += ev.delta // carry any overshoot of n to the next event
		} else {
			s.tail = nil
		}
		ev.cb()
	}
}

// Pending reports whether any callback is still queued.
func (s *scheduler) Pending() bool {
	return s.head != nil
}
